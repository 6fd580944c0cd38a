package observability

import (
	"context"
	"testing"

	"github.com/benchboost/benchboost/internal/config"
)

func TestInitTracing_DisabledExport(t *testing.T) {
	shutdown, err := InitTracing(config.Config{
		ServiceName:    "benchboost-test",
		ServiceVersion: "test",
		AppEnv:         config.EnvDev,
	}, nil)
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown tracing: %v", err)
	}
}

func TestInitTracing_StdoutExport(t *testing.T) {
	shutdown, err := InitTracing(config.Config{
		ServiceName:        "benchboost-test",
		ServiceVersion:     "test",
		AppEnv:             config.EnvDev,
		TraceStdoutEnabled: true,
	}, nil)
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown tracing: %v", err)
	}
}
