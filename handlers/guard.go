package handlers

import (
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
)

// Ownership lookups return gorm.ErrRecordNotFound both when the row is
// missing and when someone else owns it, so callers cannot tell the two apart.

func findOwnedExam(tx *gorm.DB, userID, examID string) (*models.Exam, error) {
	var exam models.Exam
	if err := tx.Where("id = ? AND user_id = ?", examID, userID).First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func findOwnedTopic(tx *gorm.DB, userID, topicID string) (*models.ExamTopic, error) {
	var topic models.ExamTopic
	err := tx.Where("exam_topics.id = ?", topicID).
		Scopes(models.TopicsIn(models.ExamFilter{OwnerID: userID})).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func findMembership(tx *gorm.DB, userID, groupID string) (*models.GroupMembership, error) {
	var membership models.GroupMembership
	err := tx.Preload("Group").
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func isMember(tx *gorm.DB, userID, groupID string) (bool, error) {
	var count int64
	err := tx.Model(&models.GroupMembership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	return count > 0, err
}
