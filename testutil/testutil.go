// Package testutil builds throwaway databases, tokens and requests for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/auth"
	"github.com/andrewpaige1/preptrack/config"
)

// TestConfig returns a configuration using HS256 development tokens.
func TestConfig() config.Config {
	return config.Config{
		Port:           "8080",
		DBDriver:       "sqlite",
		JWTSecretKey:   "test-secret",
		JWTIssuer:      "preptrack-test",
		Auth0Audience:  "preptrack-api",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       "error",
	}
}

// SetupTestDB creates a migrated SQLite database in a temp dir with foreign keys on.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := TestConfig()
	cfg.DBURL = filepath.Join(t.TempDir(), "preptrack.db") + "?_foreign_keys=on"

	db, err := config.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// SQLite allows one writer; serialize to avoid "database is locked".
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// NewValidator returns the validator matching TestConfig.
func NewValidator(t *testing.T) *validator.Validator {
	t.Helper()

	v, err := auth.NewValidator(TestConfig())
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	return v
}

// Token signs a token for subject accepted by NewValidator.
func Token(t *testing.T, subject, nickname string) string {
	t.Helper()

	token, err := auth.CreateToken(TestConfig(), subject, nickname)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request with an optional JSON body and bearer token.
func MakeRequest(method, path string, body interface{}, token string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeJSON decodes the response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
