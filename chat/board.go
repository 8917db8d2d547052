// Package chat defines the group message board. Messages are not persisted yet;
// Placeholder lists nothing and echoes posts back.
package chat

import (
	"context"
	"time"
)

// PlaceholderID is the id carried by every message Placeholder returns.
const PlaceholderID = "temp-id"

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	GroupID   string    `json:"group_id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board lists and posts messages for a group. Callers check membership.
type Board interface {
	List(ctx context.Context, groupID string) ([]Message, error)
	Post(ctx context.Context, groupID, userID, content string) (Message, error)
}

// Placeholder stores nothing.
type Placeholder struct{}

func (Placeholder) List(ctx context.Context, groupID string) ([]Message, error) {
	return []Message{}, nil
}

func (Placeholder) Post(ctx context.Context, groupID, userID, content string) (Message, error) {
	return Message{
		ID:        PlaceholderID,
		Content:   content,
		UserID:    userID,
		GroupID:   groupID,
		CreatedAt: time.Now(),
	}, nil
}
