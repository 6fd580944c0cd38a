package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/benchboost/benchboost/internal/platform/logging"
)

const (
	defaultStaticInterval = time.Hour
	defaultNewsInterval   = 15 * time.Minute
)

type staticRefresher interface {
	RefreshStatic(ctx context.Context) (RefreshResult, error)
}

type newsRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RefreshConfig sets the background refresh cadence. Zero values take the
// defaults; a negative interval disables that loop.
type RefreshConfig struct {
	StaticInterval time.Duration
	NewsInterval   time.Duration
}

// RefreshService runs the periodic refresh loops: static bootstrap data
// hourly and the news feed every fifteen minutes by default.
type RefreshService struct {
	static staticRefresher
	news   newsRefresher
	cfg    RefreshConfig
	logger *logging.Logger
}

func NewRefreshService(static staticRefresher, news newsRefresher, cfg RefreshConfig, logger *logging.Logger) *RefreshService {
	if cfg.StaticInterval == 0 {
		cfg.StaticInterval = defaultStaticInterval
	}
	if cfg.NewsInterval == 0 {
		cfg.NewsInterval = defaultNewsInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RefreshService{static: static, news: news, cfg: cfg, logger: logger}
}

// Run blocks until ctx is cancelled, ticking both refresh loops. Each
// tick failure is logged and the loop keeps going.
func (s *RefreshService) Run(ctx context.Context) {
	var wg sync.WaitGroup

	if s.static != nil && s.cfg.StaticInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, "static", s.cfg.StaticInterval, s.tickStatic)
		}()
	}
	if s.news != nil && s.cfg.NewsInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, "news", s.cfg.NewsInterval, s.tickNews)
		}()
	}

	wg.Wait()
}

func (s *RefreshService) loop(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tick(ctx); err != nil {
				s.logger.WarnContext(ctx, "scheduled refresh failed", "loop", name, "error", err)
			}
		}
	}
}

func (s *RefreshService) tickStatic(ctx context.Context) error {
	result, err := s.static.RefreshStatic(ctx)
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "scheduled static refresh done",
		"players", result.Players,
		"fixtures", result.Fixtures,
	)
	return nil
}

func (s *RefreshService) tickNews(ctx context.Context) error {
	count, err := s.news.Refresh(ctx)
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "scheduled news refresh done", "updates", count)
	return nil
}
