package handlers

import (
	"net/http"

	"github.com/andrewpaige1/preptrack/utils"
)

func (db *DBHandler) requireMember(w http.ResponseWriter, handler, userID, groupID string) bool {
	member, err := isMember(db.DB, userID, groupID)
	if err != nil {
		internalError(w, handler, "failed to check membership", "group_id", groupID, "error", err)
		return false
	}
	if !member {
		utils.ErrorResponse(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

// GET /api/groups/{groupID}/messages
func (db *DBHandler) GetGroupMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	if !db.requireMember(w, "GetGroupMessages", userID, groupID) {
		return
	}

	messages, err := db.Board.List(r.Context(), groupID)
	if err != nil {
		internalError(w, "GetGroupMessages", "failed to list messages", "group_id", groupID, "error", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, messages)
}

// POST /api/groups/{groupID}/messages
func (db *DBHandler) PostGroupMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	var req postMessageRequest
	if !db.decodeAndValidate(w, r, "PostGroupMessage", &req, "Message content is required") {
		return
	}

	if !db.requireMember(w, "PostGroupMessage", userID, groupID) {
		return
	}

	message, err := db.Board.Post(r.Context(), groupID, userID, req.Content)
	if err != nil {
		internalError(w, "PostGroupMessage", "failed to post message", "group_id", groupID, "error", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, message)
}
