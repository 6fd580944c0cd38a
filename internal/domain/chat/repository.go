package chat

import "context"

// Repository describes chat session persistence needs from use cases.
type Repository interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
	SaveSession(ctx context.Context, session Session) error
	DeleteSession(ctx context.Context, sessionID string) error
}
