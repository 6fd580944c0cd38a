package fplapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/benchboost/benchboost/internal/platform/logging"
	"github.com/benchboost/benchboost/internal/platform/resilience"
)

const defaultBaseURL = "https://fantasy.premierleague.com/api"

var plProfileCookieRegex = regexp.MustCompile(`pl_profile=[^;\s"']+`)
var errFPLTransient = crerr.Wrap(ErrUnavailable, "transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AuthCookie     string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is a typed reader for the official FPL REST API. All endpoints are
// GET; the auth cookie is only attached to account-scoped paths.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authCookie     string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		authCookie:     strings.TrimSpace(cfg.AuthCookie),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) BootstrapStatic(ctx context.Context) (Bootstrap, error) {
	var out Bootstrap
	if err := c.doJSON(ctx, "/bootstrap-static/", nil, false, &out); err != nil {
		return Bootstrap{}, fmt.Errorf("fetch bootstrap static: %w", err)
	}
	return out, nil
}

// Fixtures returns every fixture, or only one round's fixtures when event > 0.
func (c *Client) Fixtures(ctx context.Context, event int) ([]FixtureItem, error) {
	var query map[string]string
	if event > 0 {
		query = map[string]string{"event": strconv.Itoa(event)}
	}

	var out []FixtureItem
	if err := c.doJSON(ctx, "/fixtures/", query, false, &out); err != nil {
		return nil, fmt.Errorf("fetch fixtures event=%d: %w", event, err)
	}
	return out, nil
}

func (c *Client) EventLive(ctx context.Context, event int) (EventLive, error) {
	if event <= 0 {
		return EventLive{}, fmt.Errorf("event must be greater than zero")
	}

	var out EventLive
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%d/live/", event), nil, false, &out); err != nil {
		return EventLive{}, fmt.Errorf("fetch event live event=%d: %w", event, err)
	}
	return out, nil
}

func (c *Client) Entry(ctx context.Context, entryID int) (Entry, error) {
	if entryID <= 0 {
		return Entry{}, fmt.Errorf("entry id must be greater than zero")
	}

	var out Entry
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), nil, false, &out); err != nil {
		return Entry{}, fmt.Errorf("fetch entry entry_id=%d: %w", entryID, err)
	}
	return out, nil
}

func (c *Client) EntryHistory(ctx context.Context, entryID int) (EntryHistory, error) {
	if entryID <= 0 {
		return EntryHistory{}, fmt.Errorf("entry id must be greater than zero")
	}

	var out EntryHistory
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/history/", entryID), nil, false, &out); err != nil {
		return EntryHistory{}, fmt.Errorf("fetch entry history entry_id=%d: %w", entryID, err)
	}
	return out, nil
}

func (c *Client) EntryTransfers(ctx context.Context, entryID int) ([]TransferItem, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("entry id must be greater than zero")
	}

	var out []TransferItem
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/transfers/", entryID), nil, false, &out); err != nil {
		return nil, fmt.Errorf("fetch entry transfers entry_id=%d: %w", entryID, err)
	}
	return out, nil
}

func (c *Client) EntryPicks(ctx context.Context, entryID, event int) (Picks, error) {
	if entryID <= 0 {
		return Picks{}, fmt.Errorf("entry id must be greater than zero")
	}
	if event <= 0 {
		return Picks{}, fmt.Errorf("event must be greater than zero")
	}

	var out Picks
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, event), nil, false, &out); err != nil {
		return Picks{}, fmt.Errorf("fetch picks entry_id=%d event=%d: %w", entryID, event, err)
	}
	return out, nil
}

func (c *Client) ElementSummary(ctx context.Context, elementID int) (ElementSummary, error) {
	if elementID <= 0 {
		return ElementSummary{}, fmt.Errorf("element id must be greater than zero")
	}

	var out ElementSummary
	if err := c.doJSON(ctx, fmt.Sprintf("/element-summary/%d/", elementID), nil, false, &out); err != nil {
		return ElementSummary{}, fmt.Errorf("fetch element summary element_id=%d: %w", elementID, err)
	}
	return out, nil
}

func (c *Client) ClassicLeagueStandings(ctx context.Context, leagueID, page int) (LeagueStandings, error) {
	if leagueID <= 0 {
		return LeagueStandings{}, fmt.Errorf("league id must be greater than zero")
	}
	if page < 1 {
		page = 1
	}

	query := map[string]string{"page_standings": strconv.Itoa(page)}
	var out LeagueStandings
	if err := c.doJSON(ctx, fmt.Sprintf("/leagues-classic/%d/standings/", leagueID), query, false, &out); err != nil {
		return LeagueStandings{}, fmt.Errorf("fetch classic standings league_id=%d: %w", leagueID, err)
	}
	return out, nil
}

func (c *Client) EventStatus(ctx context.Context) (EventStatus, error) {
	var out EventStatus
	if err := c.doJSON(ctx, "/event-status/", nil, false, &out); err != nil {
		return EventStatus{}, fmt.Errorf("fetch event status: %w", err)
	}
	return out, nil
}

func (c *Client) DreamTeam(ctx context.Context, event int) (DreamTeam, error) {
	if event <= 0 {
		return DreamTeam{}, fmt.Errorf("event must be greater than zero")
	}

	var out DreamTeam
	if err := c.doJSON(ctx, fmt.Sprintf("/dream-team/%d/", event), nil, false, &out); err != nil {
		return DreamTeam{}, fmt.Errorf("fetch dream team event=%d: %w", event, err)
	}
	return out, nil
}

func (c *Client) SetPieceNotes(ctx context.Context) (SetPieceNotes, error) {
	var out SetPieceNotes
	if err := c.doJSON(ctx, "/team/set-piece-notes/", nil, false, &out); err != nil {
		return SetPieceNotes{}, fmt.Errorf("fetch set piece notes: %w", err)
	}
	return out, nil
}

// MyTeam requires the auth cookie; without one it fails with ErrUnauthorized.
func (c *Client) MyTeam(ctx context.Context, entryID int) (MyTeam, error) {
	if entryID <= 0 {
		return MyTeam{}, fmt.Errorf("entry id must be greater than zero")
	}
	if c.authCookie == "" {
		return MyTeam{}, fmt.Errorf("%w: auth cookie not configured", ErrUnauthorized)
	}

	var out MyTeam
	if err := c.doJSON(ctx, fmt.Sprintf("/my-team/%d/", entryID), nil, true, &out); err != nil {
		return MyTeam{}, fmt.Errorf("fetch my team entry_id=%d: %w", entryID, err)
	}
	return out, nil
}

// Me requires the auth cookie; without one it fails with ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (Me, error) {
	if c.authCookie == "" {
		return Me{}, fmt.Errorf("%w: auth cookie not configured", ErrUnauthorized)
	}

	var out Me
	if err := c.doJSON(ctx, "/me/", nil, true, &out); err != nil {
		return Me{}, fmt.Errorf("fetch me: %w", err)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, authed bool, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: circuit open, provider is temporarily unavailable", ErrUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, authed)
		if c.circuitEnabled {
			if reqErr != nil && isFPLCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, authed bool) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", "benchboost/1.0")
		if authed && c.authCookie != "" {
			req.Header.Set("cookie", c.authCookie)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFPLTransient, sanitizeSensitiveText(err.Error(), c.authCookie))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 12<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					lastErr = statusError(resp.StatusCode, raw)
					return nil, lastErr
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isFPLCircuitFailure(err error) bool {
	return crerr.Is(err, errFPLTransient)
}

// statusError keeps the originating status code recognizable: 404 and
// 401/403 carry the matching sentinel so callers can surface them
// instead of a generic failure.
func statusError(status int, raw []byte) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: provider status=%d body=%s", ErrNotFound, status, abbreviateBody(raw))
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: provider status=%d body=%s", ErrUnauthorized, status, abbreviateBody(raw))
	default:
		return fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func sanitizeSensitiveText(value, cookie string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if cookie != "" {
		value = strings.ReplaceAll(value, cookie, "REDACTED")
	}
	value = plProfileCookieRegex.ReplaceAllString(value, "pl_profile=REDACTED")
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
