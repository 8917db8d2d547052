package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/utils"
)

func (db *DBHandler) loadExam(userID, examID string) (*models.Exam, error) {
	var exam models.Exam
	err := db.Scopes(models.WithTopicsFor(userID)).
		Preload("Group").
		Where("id = ?", examID).
		First(&exam).Error
	return &exam, err
}

// GET /api/exams?groupId=&examId=
func (db *DBHandler) GetExams(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter := models.ExamFilter{
		OwnerID: userID,
		GroupID: r.URL.Query().Get("groupId"),
		ExamID:  r.URL.Query().Get("examId"),
	}

	var exams []models.Exam
	err := db.Scopes(filter.Scope, models.WithTopicsFor(userID)).
		Preload("Group").
		Order("exams.created_at desc").
		Find(&exams).Error
	if err != nil {
		internalError(w, "GetExams", "failed to fetch exams", "user_id", userID, "error", err)
		return
	}

	// If no exams found, return an empty array instead of null
	if len(exams) == 0 {
		exams = []models.Exam{}
	}

	utils.JSONResponse(w, http.StatusOK, exams)
}

// POST /api/exams
func (db *DBHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createExamRequest
	if !db.decodeAndValidate(w, r, "CreateExam", &req, "Title is required") {
		return
	}

	exam := models.Exam{
		Title:   req.Title,
		UserID:  userID,
		GroupID: req.GroupID,
	}

	if exam.GroupID != nil {
		member, err := isMember(db.DB, userID, *exam.GroupID)
		if err != nil {
			internalError(w, "CreateExam", "failed to check membership", "user_id", userID, "error", err)
			return
		}
		if !member {
			utils.ErrorResponse(w, http.StatusBadRequest, "You are not a member of this group")
			return
		}
	}

	if err := db.Create(&exam).Error; err != nil {
		internalError(w, "CreateExam", "failed to create exam", "user_id", userID, "error", err)
		return
	}

	created, err := db.loadExam(userID, exam.ID)
	if err != nil {
		internalError(w, "CreateExam", "failed to reload exam", "exam_id", exam.ID, "error", err)
		return
	}

	slog.Info("CreateExam: created exam", "exam_id", exam.ID, "user_id", userID)
	utils.JSONResponse(w, http.StatusCreated, created)
}

// PUT /api/exams/{examID}
func (db *DBHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	examID := r.PathValue("examID")

	var req updateExamRequest
	if !db.decodeAndValidate(w, r, "UpdateExam", &req, "Title is required") {
		return
	}

	exam, err := findOwnedExam(db.DB, userID, examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		internalError(w, "UpdateExam", "failed to load exam", "exam_id", examID, "error", err)
		return
	}

	if err := db.Model(exam).Update("title", req.Title).Error; err != nil {
		internalError(w, "UpdateExam", "failed to update exam", "exam_id", examID, "error", err)
		return
	}

	updated, err := db.loadExam(userID, exam.ID)
	if err != nil {
		internalError(w, "UpdateExam", "failed to reload exam", "exam_id", examID, "error", err)
		return
	}

	slog.Info("UpdateExam: updated exam", "exam_id", examID)
	utils.JSONResponse(w, http.StatusOK, updated)
}

// DELETE /api/exams/{examID}
func (db *DBHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	examID := r.PathValue("examID")

	exam, err := findOwnedExam(db.DB, userID, examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		internalError(w, "DeleteExam", "failed to load exam", "exam_id", examID, "error", err)
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error { return deleteExamCascade(tx, exam) }); err != nil {
		internalError(w, "DeleteExam", "failed to delete exam", "exam_id", examID, "error", err)
		return
	}

	slog.Info("DeleteExam: deleted exam", "exam_id", examID)
	utils.JSONResponse(w, http.StatusOK, map[string]string{"message": "Exam deleted successfully"})
}
