package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default http addr: %q", cfg.HTTPAddr)
	}
	if cfg.MongoDatabase != "benchboost" {
		t.Fatalf("unexpected default mongo database: %q", cfg.MongoDatabase)
	}
	if cfg.FPLBaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected default FPL base url: %q", cfg.FPLBaseURL)
	}
	if cfg.RefreshStaticInterval != time.Hour {
		t.Fatalf("unexpected default static refresh interval: %s", cfg.RefreshStaticInterval)
	}
	if cfg.RefreshNewsInterval != 15*time.Minute {
		t.Fatalf("unexpected default news refresh interval: %s", cfg.RefreshNewsInterval)
	}
	if cfg.LiveFPLEnabled {
		t.Fatalf("expected LiveFPLEnabled=false by default")
	}
	if !cfg.LiveFPLHeadless {
		t.Fatalf("expected LiveFPLHeadless=true by default")
	}
}

func TestLoad_OpenAIKeyRequiredInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without OPENAI_API_KEY")
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_FPLCircuitConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FPL_CIRCUIT_ENABLED", "true")
	t.Setenv("FPL_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("FPL_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FPLCircuit.Enabled {
		t.Fatalf("expected FPL circuit enabled")
	}
	if cfg.FPLCircuit.FailureThreshold != 3 {
		t.Fatalf("unexpected failure threshold: %d", cfg.FPLCircuit.FailureThreshold)
	}
	if cfg.FPLCircuit.OpenTimeout != 30*time.Second {
		t.Fatalf("unexpected open timeout: %s", cfg.FPLCircuit.OpenTimeout)
	}
	if cfg.FPLCircuit.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected half open max req: %d", cfg.FPLCircuit.HalfOpenMaxReq)
	}
}

func TestLoad_FPLCircuitInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FPL_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for FPL_CIRCUIT_FAILURE_COUNT=0")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}
