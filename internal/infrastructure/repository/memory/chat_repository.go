package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/usecase"
)

type ChatRepository struct {
	mu    sync.RWMutex
	items map[string]chat.Session
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{items: make(map[string]chat.Session)}
}

func (r *ChatRepository) ListSessions(_ context.Context) ([]chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chat.Session, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *ChatRepository) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[sessionID]
	if !ok {
		return chat.Session{}, fmt.Errorf("%w: chat session %s", usecase.ErrNotFound, sessionID)
	}
	return s, nil
}

func (r *ChatRepository) SaveSession(_ context.Context, session chat.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[session.ID] = session
	return nil
}

func (r *ChatRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[sessionID]; !ok {
		return fmt.Errorf("%w: chat session %s", usecase.ErrNotFound, sessionID)
	}
	delete(r.items, sessionID)
	return nil
}
