package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	ListByEvent(ctx context.Context, event int) ([]Fixture, error)
	ReplaceAll(ctx context.Context, fixtures []Fixture) error
}
