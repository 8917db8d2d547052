package middleware

import (
	"log/slog"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/preptrack/utils"
)

// EnsureValidToken validates bearer tokens with v. Requests without a token
// pass through without claims; SyncUserMiddleware rejects them on protected routes.
func EnsureValidToken(v *validator.Validator) func(http.Handler) http.Handler {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		slog.Warn("EnsureValidToken: rejected token", "path", r.URL.Path, "error", err)
		utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
	}

	mw := jwtmiddleware.New(
		v.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
	)

	return func(next http.Handler) http.Handler {
		return mw.CheckJWT(next)
	}
}
