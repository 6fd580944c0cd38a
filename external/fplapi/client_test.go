package fplapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benchboost/benchboost/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          false,
			FailureThreshold: 1,
		},
	})
	return client, server
}

func TestClient_BootstrapStatic_DecodesPayload(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bootstrap-static/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"events": [{"id": 1, "name": "Gameweek 1", "is_current": true, "deadline_time": "2026-08-14T17:30:00Z"}],
			"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
			"elements": [{"id": 10, "web_name": "Saka", "team": 1, "element_type": 3, "now_cost": 105, "status": "a"}],
			"total_players": 11000000
		}`))
	}))

	got, err := client.BootstrapStatic(context.Background())
	if err != nil {
		t.Fatalf("BootstrapStatic error: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "Gameweek 1" {
		t.Fatalf("unexpected events: %+v", got.Events)
	}
	if len(got.Elements) != 1 || got.Elements[0].WebName != "Saka" {
		t.Fatalf("unexpected elements: %+v", got.Elements)
	}
	if got.Elements[0].NowCost != 105 {
		t.Fatalf("now_cost = %d, want 105", got.Elements[0].NowCost)
	}
}

func TestClient_Fixtures_SendsEventQuery(t *testing.T) {
	t.Parallel()

	var gotEvent string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEvent = r.URL.Query().Get("event")
		_, _ = w.Write([]byte(`[{"id": 5, "event": 3, "team_h": 1, "team_a": 2, "team_h_difficulty": 2, "team_a_difficulty": 4}]`))
	}))

	fixtures, err := client.Fixtures(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fixtures error: %v", err)
	}
	if gotEvent != "3" {
		t.Fatalf("event query = %q, want 3", gotEvent)
	}
	if len(fixtures) != 1 || fixtures[0].TeamADifficulty != 4 {
		t.Fatalf("unexpected fixtures: %+v", fixtures)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status": [{"event": 2, "bonus_added": true}], "leagues": "Updated"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		MaxRetries:     2,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	got, err := client.EventStatus(context.Background())
	if err != nil {
		t.Fatalf("EventStatus error: %v", err)
	}
	if got.Leagues != "Updated" {
		t.Fatalf("leagues = %q, want Updated", got.Leagues)
	}
	if calls.Load() != 2 {
		t.Fatalf("server called %d times, want 2", calls.Load())
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		MaxRetries:     3,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.Entry(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for 404 response, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("server called %d times, want 1", calls.Load())
	}
}

func TestClient_ForbiddenStatusMapsUnauthorized(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Entry(context.Background(), 42)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for 403 response, got %v", err)
	}
}

func TestClient_CircuitBreakerRejectsAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.EventStatus(context.Background()); err == nil {
		t.Fatal("expected first request to fail")
	}

	_, err := client.EventStatus(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable after circuit opened, got %v", err)
	}
}

func TestClient_MyTeam_RequiresAuthCookie(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be reached without cookie")
	}))

	_, err := client.MyTeam(context.Background(), 7)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestClient_MyTeam_SendsCookie(t *testing.T) {
	t.Parallel()

	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("cookie")
		_, _ = w.Write([]byte(`{"picks": [{"element": 1, "position": 1, "multiplier": 1}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		AuthCookie:     "pl_profile=secret-token",
		Timeout:        2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	got, err := client.MyTeam(context.Background(), 7)
	if err != nil {
		t.Fatalf("MyTeam error: %v", err)
	}
	if gotCookie != "pl_profile=secret-token" {
		t.Fatalf("cookie = %q", gotCookie)
	}
	if len(got.Picks) != 1 {
		t.Fatalf("picks = %+v", got.Picks)
	}
}

func TestSanitizeSensitiveText_RedactsCookie(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial failed for pl_profile=abc123; retry", "")
	if got != "dial failed for pl_profile=REDACTED; retry" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}
