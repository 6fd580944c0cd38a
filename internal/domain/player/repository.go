package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id int) (Player, error)
	ReplaceAll(ctx context.Context, players []Player) error
}
