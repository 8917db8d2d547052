package handlers

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
)

// deleteExamCascade removes an exam with its topics and their progress.
// The schema cascades too; deleting explicitly keeps SQLite without
// foreign keys enabled consistent.
func deleteExamCascade(tx *gorm.DB, exam *models.Exam) error {
	topicIDs := tx.Model(&models.ExamTopic{}).Select("id").Where("exam_id = ?", exam.ID)

	if err := tx.Where("topic_id IN (?)", topicIDs).Delete(&models.ExamProgress{}).Error; err != nil {
		return errors.Wrap(err, "delete progress")
	}
	if err := tx.Where("exam_id = ?", exam.ID).Delete(&models.ExamTopic{}).Error; err != nil {
		return errors.Wrap(err, "delete topics")
	}
	if err := tx.Delete(exam).Error; err != nil {
		return errors.Wrap(err, "delete exam")
	}
	return nil
}

// createTopicWithProgress inserts a topic and the creator's zero-confidence progress row.
func createTopicWithProgress(tx *gorm.DB, topic *models.ExamTopic, userID string) error {
	if err := tx.Create(topic).Error; err != nil {
		return errors.Wrap(err, "create topic")
	}
	progress := models.ExamProgress{
		UserID:     userID,
		TopicID:    topic.ID,
		Confidence: 0,
	}
	if err := models.UpsertProgress(tx, &progress); err != nil {
		return errors.Wrap(err, "create initial progress")
	}
	return nil
}

// createGroupWithOwner inserts a group with a fresh join code and the creator's membership.
func createGroupWithOwner(tx *gorm.DB, group *models.Group, userID string) error {
	code, err := models.NewJoinCode()
	if err != nil {
		return errors.Wrap(err, "generate join code")
	}
	group.ID = ""
	group.JoinID = code

	if err := tx.Create(group).Error; err != nil {
		return errors.Wrap(err, "create group")
	}
	membership := models.GroupMembership{UserID: userID, GroupID: group.ID}
	if err := tx.Create(&membership).Error; err != nil {
		return errors.Wrap(err, "create membership")
	}
	return nil
}
