package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/usecase"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[int]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[int]team.Team)}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int) (team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %d", usecase.ErrNotFound, id)
	}
	return t, nil
}

func (r *TeamRepository) ReplaceAll(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range teams {
		r.items[t.ID] = t
	}
	return nil
}
