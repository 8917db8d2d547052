package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exam is owned by one user and optionally shared with a group.
type Exam struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Title     string      `gorm:"not null;size:200" json:"title"`
	UserID    string      `gorm:"not null;size:191;index" json:"user_id"`
	User      User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GroupID   *string     `gorm:"size:36;index" json:"group_id"`
	Group     *Group      `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Topics    []ExamTopic `gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"topics,omitzero"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ExamTopic is one unit of study inside an exam.
type ExamTopic struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"not null;size:200" json:"title"`
	Description *string        `gorm:"size:1000" json:"description"`
	ExamID      string         `gorm:"not null;size:36;index" json:"exam_id"`
	Exam        *Exam          `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Progress    []ExamProgress `gorm:"foreignKey:TopicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"progress,omitzero"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (t *ExamTopic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
