package models

import (
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Join codes avoid characters that are easy to confuse when read aloud (0/O, 1/I/L).
const (
	JoinCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
	JoinCodeLength   = 10
)

// Group is a study group members join with a shareable code.
type Group struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	JoinID    string    `gorm:"not null;size:32;uniqueIndex" json:"joinId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Group) TableName() string {
	return "study_groups"
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GroupMembership links a user to a group. The (user, group) pair is unique.
type GroupMembership struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	UserID   string    `gorm:"not null;size:191;uniqueIndex:idx_membership_user_group,priority:1" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GroupID  string    `gorm:"not null;size:36;uniqueIndex:idx_membership_user_group,priority:2;index" json:"group_id"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"group,omitempty"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *GroupMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// NewJoinCode returns a fresh shareable group code.
func NewJoinCode() (string, error) {
	return gonanoid.Generate(JoinCodeAlphabet, JoinCodeLength)
}

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&GroupMembership{},
		&Exam{},
		&ExamTopic{},
		&ExamProgress{},
	}
}
