package usecase

import (
	"context"
	"fmt"

	"github.com/benchboost/benchboost/external/videoprinter"
	"github.com/benchboost/benchboost/internal/domain/news"
	"github.com/benchboost/benchboost/internal/platform/cache"
	"github.com/benchboost/benchboost/internal/platform/logging"
)

const (
	newsCacheKey     = "news:recent"
	defaultNewsLimit = 50
)

// newsFeedFetcher is the slice of the videoprinter client the news
// service needs.
type newsFeedFetcher interface {
	FetchUpdates(ctx context.Context) (videoprinter.Feed, error)
}

// NewsService serves the player-news feed: cached reads from the store
// and on-demand refreshes from the videoprinter scraper.
type NewsService struct {
	fetcher newsFeedFetcher
	repo    news.Repository
	cache   *cache.Store
	logger  *logging.Logger
}

func NewNewsService(fetcher newsFeedFetcher, repo news.Repository, cacheStore *cache.Store, logger *logging.Logger) *NewsService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NewsService{
		fetcher: fetcher,
		repo:    repo,
		cache:   cacheStore,
		logger:  logger,
	}
}

// List returns the most recent updates, newest first, read through the
// cache.
func (s *NewsService) List(ctx context.Context, limit int) ([]news.Update, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.List")
	defer span.End()

	if limit <= 0 {
		limit = defaultNewsLimit
	}

	if s.cache == nil {
		return s.repo.ListRecent(ctx, limit)
	}

	key := fmt.Sprintf("%s:%d", newsCacheKey, limit)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.repo.ListRecent(ctx, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	updates, ok := value.([]news.Update)
	if !ok {
		return nil, fmt.Errorf("list news: unexpected cache entry type %T", value)
	}
	return updates, nil
}

// Refresh scrapes the feed, upserts the parsed updates and invalidates
// cached listings. Returns the number of updates parsed this run.
func (s *NewsService) Refresh(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Refresh")
	defer span.End()

	feed, err := s.fetcher.FetchUpdates(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch news feed: %v", ErrDependencyUnavailable, err)
	}
	if len(feed.Updates) == 0 {
		s.logger.InfoContext(ctx, "news feed returned no updates")
		return 0, nil
	}

	if err := s.repo.Upsert(ctx, feed.Updates); err != nil {
		return 0, fmt.Errorf("upsert news: %w", err)
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, newsCacheKey)
	}

	s.logger.InfoContext(ctx, "news refreshed",
		"updates", len(feed.Updates),
		"feed_timestamp", feed.Timestamp,
	)
	return len(feed.Updates), nil
}
