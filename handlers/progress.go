package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/utils"
)

// PUT /api/progress
func (db *DBHandler) UpsertProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req upsertProgressRequest
	if !db.decodeAndValidate(w, r, "UpsertProgress", &req, "Topic ID and valid confidence (0-100) are required") {
		return
	}

	topic, err := findOwnedTopic(db.DB, userID, req.TopicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		internalError(w, "UpsertProgress", "failed to load topic", "topic_id", req.TopicID, "error", err)
		return
	}

	progress := models.ExamProgress{
		UserID:     userID,
		TopicID:    topic.ID,
		Confidence: *req.Confidence,
		Anonymous:  req.Anonymous != nil && *req.Anonymous,
	}
	if err := models.UpsertProgress(db.DB, &progress); err != nil {
		internalError(w, "UpsertProgress", "failed to upsert progress", "topic_id", topic.ID, "user_id", userID, "error", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, progress)
}

// GET /api/progress?examId=&groupId=
func (db *DBHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	examID := r.URL.Query().Get("examId")
	if examID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Exam ID is required")
		return
	}

	// Group progress spans every member's rows, but only for groups the caller is in.
	filter := models.ExamFilter{ExamID: examID, OwnerID: userID}
	if groupID := r.URL.Query().Get("groupId"); groupID != "" {
		filter = models.ExamFilter{ExamID: examID, GroupID: groupID, MemberID: userID}
	}

	var progress []models.ExamProgress
	err := db.Scopes(models.ProgressIn(filter)).
		Preload("Topic.Exam").
		Find(&progress).Error
	if err != nil {
		internalError(w, "GetProgress", "failed to fetch progress", "exam_id", examID, "error", err)
		return
	}

	if len(progress) == 0 {
		progress = []models.ExamProgress{}
	}

	utils.JSONResponse(w, http.StatusOK, progress)
}
