package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/usecase"
)

type GameweekRepository struct {
	mu    sync.RWMutex
	items map[int]gameweek.Gameweek
}

func NewGameweekRepository() *GameweekRepository {
	return &GameweekRepository{items: make(map[int]gameweek.Gameweek)}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, gw := range r.items {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameweekRepository) GetCurrent(ctx context.Context) (gameweek.Gameweek, error) {
	return r.getByFlag(ctx, func(gw gameweek.Gameweek) bool { return gw.IsCurrent })
}

func (r *GameweekRepository) GetNext(ctx context.Context) (gameweek.Gameweek, error) {
	return r.getByFlag(ctx, func(gw gameweek.Gameweek) bool { return gw.IsNext })
}

func (r *GameweekRepository) getByFlag(_ context.Context, match func(gameweek.Gameweek) bool) (gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, gw := range r.items {
		if match(gw) {
			return gw, nil
		}
	}
	return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek", usecase.ErrNotFound)
}

func (r *GameweekRepository) ReplaceAll(_ context.Context, gameweeks []gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, gw := range gameweeks {
		r.items[gw.ID] = gw
	}
	return nil
}
