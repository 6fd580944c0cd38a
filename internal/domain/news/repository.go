package news

import "context"

// Repository describes news persistence needs from use cases.
type Repository interface {
	// ListRecent returns the newest updates first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]Update, error)
	Upsert(ctx context.Context, updates []Update) error
}
