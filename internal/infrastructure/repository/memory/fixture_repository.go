package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/fixture"
)

type FixtureRepository struct {
	mu    sync.RWMutex
	items map[int]fixture.Fixture
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{items: make(map[int]fixture.Fixture)}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.items))
	for _, f := range r.items {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FixtureRepository) ListByEvent(_ context.Context, event int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []fixture.Fixture
	for _, f := range r.items {
		if f.Event != nil && *f.Event == event {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FixtureRepository) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range fixtures {
		r.items[f.ID] = f
	}
	return nil
}
