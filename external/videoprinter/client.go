package videoprinter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/benchboost/benchboost/internal/domain/news"
	"github.com/benchboost/benchboost/internal/platform/logging"
)

const defaultFeedURL = "https://o8bbxwfg8k.execute-api.eu-west-1.amazonaws.com/dev/api/videprinter"

type ClientConfig struct {
	HTTPClient *http.Client
	FeedURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client reads the videoprinter feed: a JSON envelope whose "details" field
// is an HTML fragment of price changes, statuses and match events.
type Client struct {
	httpClient *http.Client
	feedURL    string
	logger     *logging.Logger
}

// Feed is one fetch of the feed with its upstream timestamp.
type Feed struct {
	Timestamp string        `json:"timestamp"`
	Updates   []news.Update `json:"updates"`
}

type feedEnvelope struct {
	Details string `json:"details"`
	Time    string `json:"tme"`
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
		httpClient.Timeout = 15 * time.Second
	}

	feedURL := strings.TrimSpace(cfg.FeedURL)
	if feedURL == "" {
		feedURL = defaultFeedURL
	}

	return &Client{
		httpClient: httpClient,
		feedURL:    feedURL,
		logger:     logger,
	}
}

func (c *Client) FetchUpdates(ctx context.Context) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("fetch videoprinter feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Feed{}, fmt.Errorf("read feed body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Feed{}, fmt.Errorf("feed status=%d", resp.StatusCode)
	}

	var envelope feedEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return Feed{}, fmt.Errorf("decode feed envelope: %w", err)
	}

	updates := Parse(envelope.Details, time.Now().UTC())
	c.logger.DebugContext(ctx, "videoprinter feed parsed", "updates", len(updates))

	return Feed{
		Timestamp: envelope.Time,
		Updates:   updates,
	}, nil
}
