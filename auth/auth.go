package auth

import (
	"context"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/andrewpaige1/preptrack/config"
)

// CustomClaims carries the non-registered claims the API reads.
type CustomClaims struct {
	Nickname string `json:"nickname"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

func customClaims() validator.CustomClaims {
	return &CustomClaims{}
}

// NewValidator builds the token validator for cfg: HS256 with a shared secret
// in development, otherwise RS256 against the Auth0 tenant's JWKS.
func NewValidator(cfg config.Config) (*validator.Validator, error) {
	if cfg.JWTSecretKey != "" {
		secret := []byte(cfg.JWTSecretKey)
		keyFunc := func(ctx context.Context) (interface{}, error) {
			return secret, nil
		}
		return validator.New(
			keyFunc,
			validator.HS256,
			cfg.JWTIssuer,
			[]string{cfg.Auth0Audience},
			validator.WithCustomClaims(customClaims),
			validator.WithAllowedClockSkew(time.Minute),
		)
	}

	if cfg.Auth0Domain == "" {
		return nil, errors.New("auth: AUTH0_DOMAIN not set")
	}
	issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
	if err != nil {
		return nil, errors.Wrap(err, "auth: failed to parse issuer url")
	}
	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	return validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Auth0Audience},
		validator.WithCustomClaims(customClaims),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// CreateToken signs a development token for subject, valid for 24 hours.
func CreateToken(cfg config.Config, subject, nickname string) (string, error) {
	if cfg.JWTSecretKey == "" {
		return "", errors.New("auth: JWT_SECRET_KEY not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":      subject,
			"iss":      cfg.JWTIssuer,
			"aud":      cfg.Auth0Audience,
			"nickname": nickname,
			"iat":      now.Unix(),
			"exp":      now.Add(time.Hour * 24).Unix(),
		})

	tokenString, err := token.SignedString([]byte(cfg.JWTSecretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
