package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/platform/id"
	"github.com/benchboost/benchboost/internal/platform/logging"
)

// responder produces an assistant answer for a query given the prior
// conversation turns.
type responder interface {
	Answer(ctx context.Context, history []chat.Message, query string, managerID int) (string, error)
}

// ChatService owns chat sessions: CRUD plus the query flow that loads a
// session's history, asks the responder and persists both turns.
type ChatService struct {
	repo      chat.Repository
	responder responder
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewChatService(repo chat.Repository, resp responder, ids id.Generator, logger *logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ChatService{
		repo:      repo,
		responder: resp,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

// QueryInput is one chat turn. SessionID empty means start a new session.
type QueryInput struct {
	Query     string
	SessionID string
	ManagerID int
}

// QueryResult is the assistant's answer with the session it belongs to.
type QueryResult struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// Query runs one exchange: resolve the session, answer against its
// history and persist the user and assistant turns.
func (s *ChatService) Query(ctx context.Context, input QueryInput) (QueryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.Query")
	defer span.End()

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return QueryResult{}, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	session, err := s.resolveSession(ctx, input)
	if err != nil {
		return QueryResult{}, err
	}

	answer, err := s.responder.Answer(ctx, session.Messages, query, session.ManagerID)
	if err != nil {
		return QueryResult{}, fmt.Errorf("answer query: %w", err)
	}

	now := s.now()
	session.Messages = append(session.Messages,
		chat.Message{Role: chat.RoleUser, Content: query, CreatedAt: now},
		chat.Message{Role: chat.RoleAssistant, Content: answer, CreatedAt: now},
	)
	session.UpdatedAt = now

	if err := s.repo.SaveSession(ctx, session); err != nil {
		// The user already has the answer; losing the history entry is
		// not worth failing the exchange.
		s.logger.WarnContext(ctx, "save chat session failed", "session_id", session.ID, "error", err)
	}

	return QueryResult{Answer: answer, SessionID: session.ID}, nil
}

func (s *ChatService) resolveSession(ctx context.Context, input QueryInput) (chat.Session, error) {
	if input.SessionID != "" {
		session, err := s.repo.GetSession(ctx, input.SessionID)
		if err != nil {
			return chat.Session{}, fmt.Errorf("load session %s: %w", input.SessionID, err)
		}
		if input.ManagerID > 0 {
			session.ManagerID = input.ManagerID
		}
		return session, nil
	}

	sessionID, err := s.ids.NewID()
	if err != nil {
		return chat.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	now := s.now()
	return chat.Session{
		ID:        sessionID,
		Title:     chat.TitleFrom(strings.TrimSpace(input.Query)),
		ManagerID: input.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SessionSummary lists a session without its messages.
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	ManagerID int       `json:"manager_id,omitempty"`
	Messages  int       `json:"message_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListSessions returns summaries of all sessions, most recent first.
func (s *ChatService) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.ListSessions")
	defer span.End()

	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, SessionSummary{
			SessionID: session.ID,
			Title:     session.Title,
			ManagerID: session.ManagerID,
			Messages:  len(session.Messages),
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return out, nil
}

// GetSession returns a full session with its message history.
func (s *ChatService) GetSession(ctx context.Context, sessionID string) (chat.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.GetSession")
	defer span.End()

	if strings.TrimSpace(sessionID) == "" {
		return chat.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	return s.repo.GetSession(ctx, sessionID)
}

// CreateSession starts an empty session, optionally bound to a manager.
func (s *ChatService) CreateSession(ctx context.Context, managerID int) (chat.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.CreateSession")
	defer span.End()

	sessionID, err := s.ids.NewID()
	if err != nil {
		return chat.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now()
	session := chat.Session{
		ID:        sessionID,
		Title:     "New chat",
		ManagerID: managerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return chat.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session and its history.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.DeleteSession")
	defer span.End()

	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	return s.repo.DeleteSession(ctx, sessionID)
}
