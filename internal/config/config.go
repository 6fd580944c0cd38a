package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benchboost/benchboost/internal/platform/logging"
	"github.com/benchboost/benchboost/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string
	InternalJobToken   string

	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	CacheEnabled bool
	CacheTTL     time.Duration

	FPLBaseURL    string
	FPLAuthCookie string
	FPLTimeout    time.Duration
	FPLMaxRetries int
	FPLCircuit    resilience.CircuitBreakerConfig

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	NewsFeedURL     string
	NewsFeedTimeout time.Duration

	LiveFPLEnabled  bool
	LiveFPLRankURL  string
	LiveFPLHeadless bool
	LiveFPLTimeout  time.Duration

	RefreshStaticInterval time.Duration
	RefreshNewsInterval   time.Duration

	TraceStdoutEnabled bool
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	mongoTimeout, err := time.ParseDuration(getEnv("MONGODB_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MONGODB_TIMEOUT: %w", err)
	}
	if mongoTimeout <= 0 {
		return Config{}, fmt.Errorf("MONGODB_TIMEOUT must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplCircuit, err := loadCircuitConfig("FPL")
	if err != nil {
		return Config{}, err
	}

	newsFeedTimeout, err := time.ParseDuration(getEnv("NEWS_FEED_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWS_FEED_TIMEOUT: %w", err)
	}
	if newsFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("NEWS_FEED_TIMEOUT must be > 0")
	}

	liveFPLEnabled, err := strconv.ParseBool(getEnv("LIVEFPL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFPL_ENABLED: %w", err)
	}
	liveFPLHeadless, err := strconv.ParseBool(getEnv("LIVEFPL_HEADLESS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFPL_HEADLESS: %w", err)
	}
	liveFPLTimeout, err := time.ParseDuration(getEnv("LIVEFPL_TIMEOUT", "3m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFPL_TIMEOUT: %w", err)
	}
	if liveFPLTimeout <= 0 {
		return Config{}, fmt.Errorf("LIVEFPL_TIMEOUT must be > 0")
	}

	refreshStaticInterval, err := time.ParseDuration(getEnv("REFRESH_STATIC_INTERVAL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_STATIC_INTERVAL: %w", err)
	}
	refreshNewsInterval, err := time.ParseDuration(getEnv("REFRESH_NEWS_INTERVAL", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_NEWS_INTERVAL: %w", err)
	}

	traceStdoutEnabled, err := strconv.ParseBool(getEnv("TRACE_STDOUT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TRACE_STDOUT_ENABLED: %w", err)
	}

	openAIAPIKey := strings.TrimSpace(getEnv("OPENAI_API_KEY", ""))
	if appEnv == EnvProd && openAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required when APP_ENV=prod")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "benchboost-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "benchboost"),
		MongoTimeout:  mongoTimeout,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		FPLBaseURL:    strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLAuthCookie: strings.TrimSpace(getEnv("FPL_AUTH_COOKIE", "")),
		FPLTimeout:    fplTimeout,
		FPLMaxRetries: fplMaxRetries,
		FPLCircuit:    fplCircuit,

		OpenAIAPIKey:  openAIAPIKey,
		OpenAIModel:   strings.TrimSpace(getEnv("OPENAI_MODEL", "")),
		OpenAIBaseURL: strings.TrimSpace(getEnv("OPENAI_BASE_URL", "")),

		NewsFeedURL:     strings.TrimSpace(getEnv("NEWS_FEED_URL", "")),
		NewsFeedTimeout: newsFeedTimeout,

		LiveFPLEnabled:  liveFPLEnabled,
		LiveFPLRankURL:  strings.TrimSpace(getEnv("LIVEFPL_RANK_URL", "")),
		LiveFPLHeadless: liveFPLHeadless,
		LiveFPLTimeout:  liveFPLTimeout,

		RefreshStaticInterval: refreshStaticInterval,
		RefreshNewsInterval:   refreshNewsInterval,

		TraceStdoutEnabled: traceStdoutEnabled,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if strings.TrimSpace(cfg.MongoURI) == "" {
		return Config{}, fmt.Errorf("MONGODB_URI cannot be empty")
	}
	if strings.TrimSpace(cfg.MongoDatabase) == "" {
		return Config{}, fmt.Errorf("MONGODB_DATABASE cannot be empty")
	}

	return cfg, nil
}

func loadCircuitConfig(prefix string) (resilience.CircuitBreakerConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
