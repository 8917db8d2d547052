package handlers

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/chat"
	"github.com/andrewpaige1/preptrack/utils"
)

type DBHandler struct {
	*gorm.DB
	Board    chat.Board
	validate *validator.Validate
}

func NewDBHandler(db *gorm.DB, board chat.Board) *DBHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &DBHandler{DB: db, Board: board, validate: validate}
}

// decodeAndValidate parses the body into req and runs its validate tags.
// It writes a 400 with invalidMsg and returns false on any failure.
func (db *DBHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, handler string, req interface{ normalize() }, invalidMsg string) bool {
	if err := utils.ParseJSONBody(r, req); err != nil {
		slog.Info(handler+": invalid request body", "error", err)
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	req.normalize()
	if err := db.validate.Struct(req); err != nil {
		slog.Info(handler+": validation failed", "error", err)
		utils.ErrorResponse(w, http.StatusBadRequest, invalidMsg)
		return false
	}
	return true
}

func internalError(w http.ResponseWriter, handler, msg string, args ...any) {
	slog.Error(handler+": "+msg, args...)
	utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return user.ID, true
}
