package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/news"
)

type NewsRepository struct {
	mu    sync.RWMutex
	items map[string]news.Update
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{items: make(map[string]news.Update)}
}

func (r *NewsRepository) ListRecent(_ context.Context, limit int) ([]news.Update, error) {
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]news.Update, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NewsRepository) Upsert(_ context.Context, updates []news.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		r.items[u.ID] = u
	}
	return nil
}
