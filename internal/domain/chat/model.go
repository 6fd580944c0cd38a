package chat

import (
	"fmt"
	"time"
)

// Role identifies the author of a message in a session.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role      Role      `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Session is a persisted conversation. The title comes from the first user
// message and the history grows by two messages per exchange.
type Session struct {
	ID        string    `bson:"_id" json:"session_id"`
	Title     string    `bson:"title" json:"title"`
	ManagerID int       `bson:"manager_id" json:"manager_id,omitempty"`
	Messages  []Message `bson:"messages" json:"messages"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TitleFrom derives a session title from the first user message.
func TitleFrom(query string) string {
	const maxTitleLen = 60
	if len(query) <= maxTitleLen {
		return query
	}
	return query[:maxTitleLen] + "..."
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("session created time is required")
	}

	return nil
}

func (m Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
	if m.Content == "" {
		return fmt.Errorf("message content is required")
	}

	return nil
}
