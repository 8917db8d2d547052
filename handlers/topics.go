package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/utils"
)

// POST /api/topics
func (db *DBHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createTopicRequest
	if !db.decodeAndValidate(w, r, "CreateTopic", &req, "Title and examId are required") {
		return
	}

	exam, err := findOwnedExam(db.DB, userID, req.ExamID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		internalError(w, "CreateTopic", "failed to load exam", "exam_id", req.ExamID, "error", err)
		return
	}

	topic := models.ExamTopic{
		Title:       req.Title,
		Description: req.Description,
		ExamID:      exam.ID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return createTopicWithProgress(tx, &topic, userID)
	})
	if err != nil {
		internalError(w, "CreateTopic", "failed to create topic", "exam_id", exam.ID, "error", err)
		return
	}

	var created models.ExamTopic
	if err := db.Preload("Progress", "user_id = ?", userID).Where("id = ?", topic.ID).First(&created).Error; err != nil {
		internalError(w, "CreateTopic", "failed to reload topic", "topic_id", topic.ID, "error", err)
		return
	}

	slog.Info("CreateTopic: created topic", "topic_id", topic.ID, "exam_id", exam.ID)
	utils.JSONResponse(w, http.StatusCreated, created)
}
