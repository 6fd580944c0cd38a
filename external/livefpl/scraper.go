// Package livefpl scrapes live-rank data from plan.livefpl.net with a
// headless browser. The site renders everything client side, so a plain
// HTTP fetch is not enough.
package livefpl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/benchboost/benchboost/internal/platform/logging"
)

const defaultRankURL = "https://plan.livefpl.net/rank"

type ScraperConfig struct {
	RankURL  string
	Headless bool
	Timeout  time.Duration
	Logger   *logging.Logger
}

type Scraper struct {
	rankURL  string
	headless bool
	timeout  time.Duration
	logger   *logging.Logger
}

// PlayerCard is one player tile: differentials, threats or own team.
type PlayerCard struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Ownership string `json:"ownership,omitempty"`
}

// GameweekSummary is the rank-movement banner at the top of the page.
type GameweekSummary struct {
	RankDirection  string `json:"rank_direction"`
	Status         string `json:"status,omitempty"`
	ArrowType      string `json:"arrow_type,omitempty"`
	Margin         string `json:"margin,omitempty"`
	GameweekPoints string `json:"gameweek_points,omitempty"`
	SafetyScore    string `json:"safety_score,omitempty"`
}

// Captain is the captain tile with its doubled result.
type Captain struct {
	Name   string `json:"name,omitempty"`
	Result string `json:"result,omitempty"`
}

// LiveRank bundles everything scraped for one manager entry.
type LiveRank struct {
	EntryID       int             `json:"entry_id"`
	Summary       GameweekSummary `json:"gameweek_summary"`
	Captain       Captain         `json:"captain"`
	TeamPlayers   []PlayerCard    `json:"team_players"`
	Differentials []PlayerCard    `json:"differentials"`
	Threats       []PlayerCard    `json:"threats"`
	ScrapedAt     time.Time       `json:"scraped_at"`
}

func NewScraper(cfg ScraperConfig) *Scraper {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	rankURL := strings.TrimSpace(cfg.RankURL)
	if rankURL == "" {
		rankURL = defaultRankURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}

	return &Scraper{
		rankURL:  rankURL,
		headless: cfg.Headless,
		timeout:  timeout,
		logger:   logger,
	}
}

// Scrape loads the rank page, submits the entry id and reads the rendered
// summary, captain, team, differential and threat sections.
func (s *Scraper) Scrape(ctx context.Context, entryID int) (LiveRank, error) {
	if entryID <= 0 {
		return LiveRank{}, fmt.Errorf("entry id must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	l := launcher.New().Headless(s.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return LiveRank{}, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return LiveRank{}, fmt.Errorf("connect browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: s.rankURL})
	if err != nil {
		return LiveRank{}, fmt.Errorf("open rank page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return LiveRank{}, fmt.Errorf("wait page load: %w", err)
	}

	input, err := page.Element(`input[placeholder="Enter your FPL id"]`)
	if err != nil {
		return LiveRank{}, fmt.Errorf("find entry id input: %w", err)
	}
	if err := input.Input(strconv.Itoa(entryID)); err != nil {
		return LiveRank{}, fmt.Errorf("fill entry id: %w", err)
	}

	button, err := page.ElementR("button", "Enter id")
	if err != nil {
		return LiveRank{}, fmt.Errorf("find submit button: %w", err)
	}
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return LiveRank{}, fmt.Errorf("submit entry id: %w", err)
	}

	// Differentials render last; the other sections are ready once they are.
	if _, err := page.Element("#differentials_summary"); err != nil {
		return LiveRank{}, fmt.Errorf("wait rendered summary: %w", err)
	}

	out := LiveRank{
		EntryID:   entryID,
		ScrapedAt: time.Now().UTC(),
	}
	out.Summary = s.readSummary(page)
	out.Captain = Captain{
		Name:   optionalText(page, "#cap-name"),
		Result: optionalText(page, "#cap-result"),
	}
	out.TeamPlayers = s.readTeamPlayers(page)
	out.Differentials = s.readPlayerCards(page, "#differentials_summary div.player-details")
	out.Threats = s.readPlayerCards(page, "#danger_summary div.player-details")

	s.logger.DebugContext(ctx, "livefpl scrape complete",
		"entry_id", entryID,
		"team_players", len(out.TeamPlayers),
		"differentials", len(out.Differentials),
		"threats", len(out.Threats),
	)

	return out, nil
}

func (s *Scraper) readSummary(page *rod.Page) GameweekSummary {
	summary := GameweekSummary{RankDirection: "unchanged"}

	if visible(page, "#upsummary") {
		summary.RankDirection = "up"
	} else if visible(page, "#downsummary") {
		summary.RankDirection = "down"
	}

	summary.Status = optionalText(page, "#presummary")
	summary.ArrowType = optionalText(page, "#greenred")
	summary.Margin = optionalText(page, "#marginsummary")
	summary.GameweekPoints = optionalText(page, "#ptssummary")
	summary.SafetyScore = optionalText(page, "#safetysummary")

	return summary
}

func (s *Scraper) readPlayerCards(page *rod.Page, selector string) []PlayerCard {
	elements, err := page.Elements(selector)
	if err != nil {
		return nil
	}

	out := make([]PlayerCard, 0, len(elements))
	for _, el := range elements {
		card := PlayerCard{
			Name:      optionalElementText(el, "h5.player-name"),
			Ownership: optionalElementText(el, "p.player-played.lower"),
		}
		if card.Name == "" {
			continue
		}
		if raw := optionalElementText(el, "p.player-played"); raw != "" {
			if points, err := strconv.Atoi(raw); err == nil {
				card.Points = points
			}
		}
		out = append(out, card)
	}
	return out
}

func (s *Scraper) readTeamPlayers(page *rod.Page) []PlayerCard {
	elements, err := page.Elements(`div.player-details[id$="-visibility"]`)
	if err != nil {
		return nil
	}

	out := make([]PlayerCard, 0, len(elements))
	for _, el := range elements {
		if style, err := el.Attribute("style"); err == nil && style != nil {
			if strings.Contains(strings.ReplaceAll(*style, " ", ""), "display:none") {
				continue
			}
		}

		card := PlayerCard{Name: optionalElementText(el, "h5.player-name")}
		if card.Name == "" {
			continue
		}
		raw := optionalElementText(el, "p.player-played")
		if raw == "" {
			raw = optionalElementText(el, "p.player-live")
		}
		if points, err := strconv.Atoi(raw); err == nil {
			card.Points = points
		}
		out = append(out, card)
	}
	return out
}

const lookupTimeout = 2 * time.Second

func optionalText(page *rod.Page, selector string) string {
	el, err := page.Timeout(lookupTimeout).Element(selector)
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func optionalElementText(el *rod.Element, selector string) string {
	child, err := el.Timeout(lookupTimeout).Element(selector)
	if err != nil {
		return ""
	}
	text, err := child.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func visible(page *rod.Page, selector string) bool {
	el, err := page.Timeout(lookupTimeout).Element(selector)
	if err != nil {
		return false
	}
	style, err := el.Attribute("style")
	if err != nil || style == nil {
		return true
	}
	return !strings.Contains(strings.ReplaceAll(*style, " ", ""), "display:none")
}
