package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/benchboost/benchboost/external/fplapi"
	"github.com/benchboost/benchboost/internal/domain/fixture"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/platform/cache"
	"github.com/benchboost/benchboost/internal/platform/logging"
	"github.com/benchboost/benchboost/internal/snapshot"
)

const ingestionWorkerCount = 4

// bootstrapFetcher is the slice of the upstream client the ingestion
// service needs.
type bootstrapFetcher interface {
	BootstrapStatic(ctx context.Context) (fplapi.Bootstrap, error)
	Fixtures(ctx context.Context, event int) ([]fplapi.FixtureItem, error)
}

// IngestionService pulls the bootstrap dataset from the upstream API,
// persists it per collection and swaps in a fresh in-memory snapshot.
type IngestionService struct {
	fetcher      bootstrapFetcher
	playerRepo   player.Repository
	teamRepo     team.Repository
	gameweekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
	snapshots    *snapshot.Handle
	cache        *cache.Store
	logger       *logging.Logger
}

func NewIngestionService(
	fetcher bootstrapFetcher,
	playerRepo player.Repository,
	teamRepo team.Repository,
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	snapshots *snapshot.Handle,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &IngestionService{
		fetcher:      fetcher,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		gameweekRepo: gameweekRepo,
		fixtureRepo:  fixtureRepo,
		snapshots:    snapshots,
		cache:        cacheStore,
		logger:       logger,
	}
}

// RefreshResult summarizes one ingestion run.
type RefreshResult struct {
	Players   int           `json:"players"`
	Teams     int           `json:"teams"`
	Gameweeks int           `json:"gameweeks"`
	Fixtures  int           `json:"fixtures"`
	Duration  time.Duration `json:"duration"`
}

// RefreshStatic fetches the bootstrap and fixture feeds, writes every
// collection and publishes a new snapshot. The snapshot is only swapped
// in when all collections persisted; a partial write leaves the previous
// snapshot serving reads.
func (s *IngestionService) RefreshStatic(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RefreshStatic")
	defer span.End()

	start := time.Now()

	bootstrap, err := s.fetcher.BootstrapStatic(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch bootstrap: %w", mapProviderError(err))
	}
	fixtureItems, err := s.fetcher.Fixtures(ctx, 0)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch fixtures: %w", mapProviderError(err))
	}

	now := time.Now().UTC()
	players := fplapi.MapPlayers(bootstrap.Elements, now)
	teams := fplapi.MapTeams(bootstrap.Teams, now)
	gameweeks := fplapi.MapGameweeks(bootstrap.Events, now)
	fixtures := fplapi.MapFixtures(fixtureItems, now)

	if len(players) == 0 || len(teams) == 0 || len(gameweeks) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: bootstrap feed is missing core collections", ErrDependencyUnavailable)
	}

	if err := s.persistCollections(ctx, players, teams, gameweeks, fixtures); err != nil {
		return RefreshResult{}, err
	}

	s.snapshots.Swap(snapshot.Build(players, teams, gameweeks, fixtures))
	if s.cache != nil {
		s.cache.Clear(ctx)
	}

	result := RefreshResult{
		Players:   len(players),
		Teams:     len(teams),
		Gameweeks: len(gameweeks),
		Fixtures:  len(fixtures),
		Duration:  time.Since(start),
	}
	s.logger.InfoContext(ctx, "static data refreshed",
		"players", result.Players,
		"teams", result.Teams,
		"gameweeks", result.Gameweeks,
		"fixtures", result.Fixtures,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// RestoreFromStore rebuilds the snapshot from persisted collections.
// Used at startup so reads survive an unreachable upstream.
func (s *IngestionService) RestoreFromStore(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RestoreFromStore")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	gameweeks, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load gameweeks: %w", err)
	}
	fixtures, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	if len(players) == 0 || len(teams) == 0 || len(gameweeks) == 0 {
		return fmt.Errorf("%w: persisted bootstrap collections are empty", ErrNotFound)
	}

	s.snapshots.Swap(snapshot.Build(players, teams, gameweeks, fixtures))
	s.logger.InfoContext(ctx, "snapshot restored from store",
		"players", len(players),
		"teams", len(teams),
		"gameweeks", len(gameweeks),
		"fixtures", len(fixtures),
	)
	return nil
}

func (s *IngestionService) persistCollections(
	ctx context.Context,
	players []player.Player,
	teams []team.Team,
	gameweeks []gameweek.Gameweek,
	fixtures []fixture.Fixture,
) error {
	type writeJob struct {
		name string
		run  func(context.Context) error
	}
	jobs := []writeJob{
		{name: "players", run: func(ctx context.Context) error { return s.playerRepo.ReplaceAll(ctx, players) }},
		{name: "teams", run: func(ctx context.Context) error { return s.teamRepo.ReplaceAll(ctx, teams) }},
		{name: "gameweeks", run: func(ctx context.Context) error { return s.gameweekRepo.ReplaceAll(ctx, gameweeks) }},
		{name: "fixtures", run: func(ctx context.Context) error { return s.fixtureRepo.ReplaceAll(ctx, fixtures) }},
	}

	pool, err := ants.NewPool(ingestionWorkerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var failures []string

	var workers sync.WaitGroup
	for _, job := range jobs {
		job := job
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := job.run(ctx); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", job.name, err))
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			mu.Lock()
			failures = append(failures, fmt.Sprintf("%s: submit: %v", job.name, err))
			mu.Unlock()
		}
	}
	workers.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("persist collections: %s", strings.Join(failures, "; "))
	}
	return nil
}
