package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benchboost/benchboost/external/fplapi"
	"github.com/benchboost/benchboost/internal/domain/fixture"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/platform/cache"
	"github.com/benchboost/benchboost/internal/snapshot"
)

type fakeFetcher struct {
	bootstrap    fplapi.Bootstrap
	fixtures     []fplapi.FixtureItem
	bootstrapErr error
}

func (f *fakeFetcher) BootstrapStatic(_ context.Context) (fplapi.Bootstrap, error) {
	if f.bootstrapErr != nil {
		return fplapi.Bootstrap{}, f.bootstrapErr
	}
	return f.bootstrap, nil
}

func (f *fakeFetcher) Fixtures(_ context.Context, _ int) ([]fplapi.FixtureItem, error) {
	return f.fixtures, nil
}

type fakePlayerRepo struct {
	mu     sync.Mutex
	stored []player.Player
	err    error
}

func (r *fakePlayerRepo) List(_ context.Context) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.stored {
		if p.ID == id {
			return p, nil
		}
	}
	return player.Player{}, ErrNotFound
}

func (r *fakePlayerRepo) ReplaceAll(_ context.Context, players []player.Player) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = players
	return nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	stored []team.Team
}

func (r *fakeTeamRepo) List(_ context.Context) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.stored {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, ErrNotFound
}

func (r *fakeTeamRepo) ReplaceAll(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = teams
	return nil
}

type fakeGameweekRepo struct {
	mu     sync.Mutex
	stored []gameweek.Gameweek
}

func (r *fakeGameweekRepo) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

func (r *fakeGameweekRepo) GetCurrent(_ context.Context) (gameweek.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, gw := range r.stored {
		if gw.IsCurrent {
			return gw, nil
		}
	}
	return gameweek.Gameweek{}, ErrNotFound
}

func (r *fakeGameweekRepo) GetNext(_ context.Context) (gameweek.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, gw := range r.stored {
		if gw.IsNext {
			return gw, nil
		}
	}
	return gameweek.Gameweek{}, ErrNotFound
}

func (r *fakeGameweekRepo) ReplaceAll(_ context.Context, gameweeks []gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = gameweeks
	return nil
}

type fakeFixtureRepo struct {
	mu     sync.Mutex
	stored []fixture.Fixture
}

func (r *fakeFixtureRepo) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

func (r *fakeFixtureRepo) ListByEvent(_ context.Context, event int) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fixture.Fixture
	for _, f := range r.stored {
		if f.Event != nil && *f.Event == event {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFixtureRepo) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = fixtures
	return nil
}

func sampleBootstrap() fplapi.Bootstrap {
	return fplapi.Bootstrap{
		Events: []fplapi.EventItem{
			{ID: 1, Name: "Gameweek 1", DeadlineTime: "2025-08-15T17:30:00Z", IsCurrent: true, Finished: true},
			{ID: 2, Name: "Gameweek 2", DeadlineTime: "2025-08-22T17:30:00Z", IsNext: true},
		},
		Teams: []fplapi.TeamItem{
			{ID: 1, Name: "Arsenal", ShortName: "ARS"},
			{ID: 2, Name: "Liverpool", ShortName: "LIV"},
		},
		Elements: []fplapi.ElementItem{
			{ID: 10, FirstName: "Bukayo", SecondName: "Saka", WebName: "Saka", Team: 1, ElementType: 3, NowCost: 102, Status: "a"},
			{ID: 20, FirstName: "Mohamed", SecondName: "Salah", WebName: "M.Salah", Team: 2, ElementType: 3, NowCost: 128, Status: "a"},
			{ID: 30, FirstName: "Gone", SecondName: "Player", WebName: "Gone", Team: 1, ElementType: 4, NowCost: 45, Status: "u"},
		},
	}
}

func newIngestionFixture(fetcher *fakeFetcher) (*IngestionService, *fakePlayerRepo, *snapshot.Handle, *cache.Store) {
	playerRepo := &fakePlayerRepo{}
	handle := snapshot.NewHandle()
	store := cache.NewStore(time.Minute)
	svc := NewIngestionService(fetcher, playerRepo, &fakeTeamRepo{}, &fakeGameweekRepo{}, &fakeFixtureRepo{}, handle, store, nil)
	return svc, playerRepo, handle, store
}

func TestIngestionService_RefreshStatic(t *testing.T) {
	t.Parallel()

	event := 1
	fetcher := &fakeFetcher{
		bootstrap: sampleBootstrap(),
		fixtures: []fplapi.FixtureItem{
			{ID: 100, Event: &event, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
		},
	}
	svc, playerRepo, handle, _ := newIngestionFixture(fetcher)

	result, err := svc.RefreshStatic(t.Context())
	if err != nil {
		t.Fatalf("refresh static failed: %v", err)
	}
	if result.Players != 3 {
		t.Fatalf("unexpected player count: %d", result.Players)
	}
	if result.Fixtures != 1 {
		t.Fatalf("unexpected fixture count: %d", result.Fixtures)
	}
	if len(playerRepo.stored) != 3 {
		t.Fatalf("expected all players persisted, got %d", len(playerRepo.stored))
	}

	snap, err := handle.Current()
	if err != nil {
		t.Fatalf("snapshot not published: %v", err)
	}
	// Status "u" players are persisted but excluded from the pool.
	if got := len(snap.Players()); got != 2 {
		t.Fatalf("expected 2 selectable players, got %d", got)
	}
	if _, err := snap.PlayerByName("saka"); err != nil {
		t.Fatalf("player lookup failed: %v", err)
	}
}

func TestIngestionService_RefreshStatic_FetchFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	event := 1
	fetcher := &fakeFetcher{
		bootstrap: sampleBootstrap(),
		fixtures: []fplapi.FixtureItem{
			{ID: 100, Event: &event, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
		},
	}
	svc, _, handle, _ := newIngestionFixture(fetcher)

	if _, err := svc.RefreshStatic(t.Context()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	first, err := handle.Current()
	if err != nil {
		t.Fatalf("snapshot not published: %v", err)
	}

	fetcher.bootstrapErr = errors.New("upstream down")
	if _, err := svc.RefreshStatic(t.Context()); err == nil {
		t.Fatal("expected refresh error")
	}

	second, err := handle.Current()
	if err != nil {
		t.Fatalf("snapshot lost after failed refresh: %v", err)
	}
	if first != second {
		t.Fatal("failed refresh must not replace the snapshot")
	}
}

func TestIngestionService_RefreshStatic_PersistFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{bootstrap: sampleBootstrap()}
	svc, playerRepo, handle, _ := newIngestionFixture(fetcher)
	playerRepo.err = errors.New("write failed")

	if _, err := svc.RefreshStatic(t.Context()); err == nil {
		t.Fatal("expected persist error")
	}
	if handle.Ready() {
		t.Fatal("snapshot must not be published when a collection write fails")
	}
}

func TestIngestionService_RestoreFromStore(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{bootstrap: sampleBootstrap()}
	svc, playerRepo, _, _ := newIngestionFixture(fetcher)

	if err := svc.RestoreFromStore(t.Context()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if _, err := svc.RefreshStatic(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(playerRepo.stored) == 0 {
		t.Fatal("expected players persisted")
	}

	fresh := snapshot.NewHandle()
	restored := NewIngestionService(fetcher, playerRepo, &fakeTeamRepo{stored: nil}, &fakeGameweekRepo{}, &fakeFixtureRepo{}, fresh, nil, nil)
	if err := restored.RestoreFromStore(t.Context()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with empty teams, got %v", err)
	}
}
