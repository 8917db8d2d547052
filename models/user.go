package models

import "time"

// User mirrors an identity provider account. ID is the token subject.
type User struct {
	ID        string    `gorm:"primaryKey;size:191" json:"id"`
	Nickname  string    `gorm:"size:100" json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
