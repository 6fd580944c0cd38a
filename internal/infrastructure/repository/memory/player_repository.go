// Package memory holds map-backed repositories with the same contracts as
// the mongo package. They serve tests and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/usecase"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[int]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[int]player.Player)}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %d", usecase.ErrNotFound, id)
	}
	return p, nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		r.items[p.ID] = p
	}
	return nil
}
