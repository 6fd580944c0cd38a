package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetCurrent(ctx context.Context) (Gameweek, error)
	GetNext(ctx context.Context) (Gameweek, error)
	ReplaceAll(ctx context.Context, gameweeks []Gameweek) error
}
