package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/benchboost/benchboost/external/fplapi"
	"github.com/benchboost/benchboost/external/videoprinter"
	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/news"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/snapshot"
	"github.com/benchboost/benchboost/internal/usecase"
)

type fakeChatRepo struct {
	sessions map[string]chat.Session
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: make(map[string]chat.Session)}
}

func (r *fakeChatRepo) ListSessions(_ context.Context) ([]chat.Session, error) {
	out := make([]chat.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeChatRepo) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return chat.Session{}, fmt.Errorf("%w: session %s", usecase.ErrNotFound, sessionID)
	}
	return s, nil
}

func (r *fakeChatRepo) SaveSession(_ context.Context, session chat.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeChatRepo) DeleteSession(_ context.Context, sessionID string) error {
	if _, ok := r.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: session %s", usecase.ErrNotFound, sessionID)
	}
	delete(r.sessions, sessionID)
	return nil
}

type cannedResponder struct{ answer string }

func (c *cannedResponder) Answer(_ context.Context, _ []chat.Message, _ string, _ int) (string, error) {
	return c.answer, nil
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("session-%d", g.n), nil
}

type fakeEntryFetcher struct {
	entry fplapi.Entry
	err   error
}

func (f *fakeEntryFetcher) Entry(_ context.Context, entryID int) (fplapi.Entry, error) {
	if f.err != nil {
		return fplapi.Entry{}, f.err
	}
	if entryID != f.entry.ID {
		return fplapi.Entry{}, fmt.Errorf("%w: provider status=404", fplapi.ErrNotFound)
	}
	return f.entry, nil
}

func (f *fakeEntryFetcher) EntryHistory(_ context.Context, _ int) (fplapi.EntryHistory, error) {
	return fplapi.EntryHistory{}, nil
}

func (f *fakeEntryFetcher) EntryPicks(_ context.Context, _, _ int) (fplapi.Picks, error) {
	return fplapi.Picks{}, nil
}

func (f *fakeEntryFetcher) EventLive(_ context.Context, _ int) (fplapi.EventLive, error) {
	return fplapi.EventLive{}, nil
}

type fakeFeedFetcher struct {
	feed videoprinter.Feed
	err  error
}

func (f *fakeFeedFetcher) FetchUpdates(_ context.Context) (videoprinter.Feed, error) {
	if f.err != nil {
		return videoprinter.Feed{}, f.err
	}
	return f.feed, nil
}

type fakeNewsRepo struct {
	updates []news.Update
}

func (r *fakeNewsRepo) ListRecent(_ context.Context, limit int) ([]news.Update, error) {
	if limit > len(r.updates) {
		limit = len(r.updates)
	}
	return r.updates[:limit], nil
}

func (r *fakeNewsRepo) Upsert(_ context.Context, updates []news.Update) error {
	r.updates = append(r.updates, updates...)
	return nil
}

func testRouter(t *testing.T) (http.Handler, *fakeChatRepo) {
	t.Helper()

	players := []player.Player{
		{ID: 1, WebName: "Saka", TeamID: 1, Position: player.PositionMidfielder, Status: player.StatusAvailable, NowCost: 102},
	}
	teams := []team.Team{{ID: 1, Name: "Arsenal", ShortName: "ARS"}}
	gameweeks := []gameweek.Gameweek{{ID: 7, Name: "Gameweek 7", IsCurrent: true}}

	handle := snapshot.NewHandle()
	handle.Swap(snapshot.Build(players, teams, gameweeks, nil))

	chatRepo := newFakeChatRepo()
	chatService := usecase.NewChatService(chatRepo, &cannedResponder{answer: "Captain Saka."}, &seqIDs{}, nil)
	managerService := usecase.NewManagerService(&fakeEntryFetcher{
		entry: fplapi.Entry{ID: 42, PlayerFirstName: "Alex", PlayerLastName: "Morgan", Name: "Bench Warmers"},
	}, handle)
	newsService := usecase.NewNewsService(
		&fakeFeedFetcher{feed: videoprinter.Feed{Updates: []news.Update{{ID: "n1", Kind: news.KindPriceChange, Player: "Saka"}}}},
		&fakeNewsRepo{updates: []news.Update{{ID: "n0", Kind: news.KindStatus, Player: "Rice"}}},
		nil,
		nil,
	)

	handler := NewHandler(chatService, managerService, newsService, nil, nil)
	return NewRouter(handler, nil, nil, "job-secret"), chatRepo
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHandler_Healthz(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestHandler_PostQuery(t *testing.T) {
	router, repo := testRouter(t)

	payload := `{"query":"Who should I captain?","manager_id":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["answer"].(string); got != "Captain Saka." {
		t.Fatalf("unexpected answer: %q", got)
	}
	sessionID, _ := data["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("expected a session id in the response")
	}
	if _, ok := repo.sessions[sessionID]; !ok {
		t.Fatalf("expected session %s to be persisted", sessionID)
	}
}

func TestHandler_PostQuery_EmptyQuery(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_PostQuery_UnknownField(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"hi","bogus":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_ChatLifecycle(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"manager_id":42}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	sessionID, _ := data["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("expected a session id in the create response")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 listing chats, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chats/"+sessionID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 getting chat, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/chats/"+sessionID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 deleting chat, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chats/"+sessionID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for deleted chat, got %d", rec.Code)
	}
}

func TestHandler_GetManagerProfile(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["team_name"].(string); got != "Bench Warmers" {
		t.Fatalf("unexpected team name: %q", got)
	}
}

func TestHandler_GetManagerProfile_UnknownEntry(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown manager, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_GetManagerProfile_InvalidEntry(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_GetManagerSquad_InvalidEvent(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/42/team?event=zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_ListNews(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/news?limit=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 news item, got %d", len(items))
	}
}

func TestHandler_ListNews_InvalidLimit(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/news?limit=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_RefreshNews(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/news/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["stored"].(float64); got != 1 {
		t.Fatalf("expected 1 stored update, got %v", data["stored"])
	}
}

func TestHandler_InternalRefreshJob_RequiresToken(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
