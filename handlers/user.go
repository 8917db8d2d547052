package handlers

import (
	"net/http"

	"github.com/andrewpaige1/preptrack/utils"
)

// GET /api/users/me
func (db *DBHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.JSONResponse(w, http.StatusOK, user)
}
