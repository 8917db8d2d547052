package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/auth"
	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/utils"
)

func nicknameClaim(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	if customClaims, ok := claims.CustomClaims.(*auth.CustomClaims); ok && customClaims != nil {
		return customClaims.Nickname
	}
	return ""
}

// SyncUserMiddleware ensures the token subject exists as a User and attaches it to context.
func SyncUserMiddleware(db *gorm.DB) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetAuth0ID(r)
			if !ok {
				utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			nickname := nicknameClaim(r)

			var user models.User
			result := db.Where("id = ?", subject).First(&user)

			switch {
			case errors.Is(result.Error, gorm.ErrRecordNotFound):
				user = models.User{ID: subject, Nickname: nickname}
				if err := db.Create(&user).Error; err != nil {
					// A concurrent first request may have created the row already.
					if !errors.Is(err, gorm.ErrDuplicatedKey) {
						slog.Error("SyncUserMiddleware: failed to create user", "user_id", subject, "error", err)
						utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
						return
					}
					if err := db.Where("id = ?", subject).First(&user).Error; err != nil {
						slog.Error("SyncUserMiddleware: failed to reload user", "user_id", subject, "error", err)
						utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
						return
					}
				} else {
					slog.Info("SyncUserMiddleware: created user", "user_id", subject)
				}
			case result.Error != nil:
				slog.Error("SyncUserMiddleware: failed to load user", "user_id", subject, "error", result.Error)
				utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				return
			case nickname != "" && user.Nickname != nickname:
				user.Nickname = nickname
				if err := db.Model(&user).Update("nickname", nickname).Error; err != nil {
					slog.Error("SyncUserMiddleware: failed to update user", "user_id", subject, "error", err)
					utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				slog.Info("SyncUserMiddleware: updated nickname", "user_id", subject)
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), &user)))
		}
	}
}
