// Package app assembles the service: repositories, upstream clients, use
// case services, the assistant and the HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/benchboost/benchboost/external/fplapi"
	"github.com/benchboost/benchboost/external/livefpl"
	"github.com/benchboost/benchboost/external/videoprinter"
	"github.com/benchboost/benchboost/internal/agent"
	"github.com/benchboost/benchboost/internal/config"
	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/domain/fixture"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/news"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/infrastructure/repository/memory"
	mongorepo "github.com/benchboost/benchboost/internal/infrastructure/repository/mongo"
	"github.com/benchboost/benchboost/internal/interfaces/httpapi"
	"github.com/benchboost/benchboost/internal/platform/cache"
	idgen "github.com/benchboost/benchboost/internal/platform/id"
	"github.com/benchboost/benchboost/internal/platform/logging"
	"github.com/benchboost/benchboost/internal/snapshot"
	"github.com/benchboost/benchboost/internal/usecase"
)

// App bundles everything a main needs to run and stop the service.
type App struct {
	Server    *http.Server
	Ingestion *usecase.IngestionService
	News      *usecase.NewsService
	Refresh   *usecase.RefreshService

	logger *logging.Logger
	mongo  *mongorepo.Store
}

type repositories struct {
	players   player.Repository
	teams     team.Repository
	gameweeks gameweek.Repository
	fixtures  fixture.Repository
	news      news.Repository
	chats     chat.Repository
}

// Build wires the whole service. Mongo is preferred; when it cannot be
// reached the repositories fall back to in-memory stores so local runs
// work without infrastructure.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{logger: logger}
	repos := buildRepositories(ctx, cfg, logger, app)

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	snapshots := snapshot.NewHandle()

	fplClient := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		AuthCookie:     cfg.FPLAuthCookie,
		Timeout:        cfg.FPLTimeout,
		MaxRetries:     cfg.FPLMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.FPLCircuit,
	})
	feedClient := videoprinter.NewClient(videoprinter.ClientConfig{
		FeedURL: cfg.NewsFeedURL,
		Timeout: cfg.NewsFeedTimeout,
		Logger:  logger,
	})

	ingestionService := usecase.NewIngestionService(
		fplClient,
		repos.players,
		repos.teams,
		repos.gameweeks,
		repos.fixtures,
		snapshots,
		cacheStore,
		logger,
	)
	statsService := usecase.NewStatsService(snapshots)
	managerService := usecase.NewManagerService(fplClient, snapshots)
	newsService := usecase.NewNewsService(feedClient, repos.news, cacheStore, logger)

	var liveRank *livefpl.Scraper
	if cfg.LiveFPLEnabled {
		liveRank = livefpl.NewScraper(livefpl.ScraperConfig{
			RankURL:  cfg.LiveFPLRankURL,
			Headless: cfg.LiveFPLHeadless,
			Timeout:  cfg.LiveFPLTimeout,
			Logger:   logger,
		})
	}

	toolset := buildToolset(statsService, managerService, newsService, snapshots, liveRank)
	assistant := agent.New(newOpenAIClient(cfg), toolset, agent.Config{
		Model:  cfg.OpenAIModel,
		Logger: logger,
	})

	chatService := usecase.NewChatService(repos.chats, assistant, idgen.NewUUIDGenerator(), logger)

	refreshService := usecase.NewRefreshService(ingestionService, newsService, usecase.RefreshConfig{
		StaticInterval: cfg.RefreshStaticInterval,
		NewsInterval:   cfg.RefreshNewsInterval,
	}, logger)

	handler := httpapi.NewHandler(chatService, managerService, newsService, ingestionService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app.Server = server
	app.Ingestion = ingestionService
	app.News = newsService
	app.Refresh = refreshService
	return app, nil
}

// Close releases infrastructure handles. Safe to call once after the
// server has stopped.
func (a *App) Close(ctx context.Context) error {
	if a.mongo == nil {
		return nil
	}
	return a.mongo.Close(ctx)
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger, app *App) repositories {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	store, err := mongorepo.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Warn("mongo unavailable, using in-memory repositories", "error", err)
		return repositories{
			players:   memory.NewPlayerRepository(),
			teams:     memory.NewTeamRepository(),
			gameweeks: memory.NewGameweekRepository(),
			fixtures:  memory.NewFixtureRepository(),
			news:      memory.NewNewsRepository(),
			chats:     memory.NewChatRepository(),
		}
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("ensure mongo indexes failed", "error", err)
	}

	app.mongo = store
	return repositories{
		players:   store.Players(),
		teams:     store.Teams(),
		gameweeks: store.Gameweeks(),
		fixtures:  store.Fixtures(),
		news:      store.News(),
		chats:     store.ChatSessions(),
	}
}

// buildToolset keeps the nil-scraper case a true nil interface so the
// tools report live rank as disabled instead of panicking.
func buildToolset(
	stats *usecase.StatsService,
	managers *usecase.ManagerService,
	newsService *usecase.NewsService,
	snapshots *snapshot.Handle,
	liveRank *livefpl.Scraper,
) *agent.Toolset {
	if liveRank == nil {
		return agent.NewToolset(stats, managers, newsService, snapshots, nil)
	}
	return agent.NewToolset(stats, managers, newsService, snapshots, liveRank)
}

func newOpenAIClient(cfg config.Config) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}
