package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MinConfidence = 0
	MaxConfidence = 100
)

// ExamProgress is a user's self-rated confidence for a topic.
// There is at most one row per (user, topic).
type ExamProgress struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"not null;size:191;uniqueIndex:idx_progress_user_topic,priority:1" json:"user_id"`
	TopicID     string     `gorm:"not null;size:36;uniqueIndex:idx_progress_user_topic,priority:2;index" json:"topic_id"`
	Topic       *ExamTopic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Confidence  int        `gorm:"not null" json:"confidence"`
	Anonymous   bool       `gorm:"not null" json:"anonymous"`
	LastUpdated time.Time  `gorm:"not null" json:"lastUpdated"`
}

func (ExamProgress) TableName() string {
	return "exam_progress"
}

func (p *ExamProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// UpsertProgress inserts p or, when a row for the same (user, topic) exists,
// overwrites its confidence, anonymous flag and timestamp in a single statement.
// On return p holds the stored row.
func UpsertProgress(db *gorm.DB, p *ExamProgress) error {
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now()
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"confidence", "anonymous", "last_updated"}),
	}).Create(p).Error
	if err != nil {
		return err
	}

	var stored ExamProgress
	if err := db.Where("user_id = ? AND topic_id = ?", p.UserID, p.TopicID).First(&stored).Error; err != nil {
		return err
	}
	*p = stored
	return nil
}
