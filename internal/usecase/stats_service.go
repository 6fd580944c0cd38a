package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/rules"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/snapshot"
)

const (
	defaultBestPlayersCount = 5
	defaultMinMinutes       = 90
	maxBestPlayersCount     = 50
)

// Metrics accepted by the best-players and top-players queries.
var validPlayerMetrics = map[string]struct{}{
	"total_points":                {},
	"form":                        {},
	"minutes":                     {},
	"goals_scored":                {},
	"assists":                     {},
	"clean_sheets":                {},
	"bonus":                       {},
	"bps":                         {},
	"ict_index":                   {},
	"selected_by_percent":         {},
	"points_per_90":               {},
	"points_per_million":          {},
	"points_per_game_per_million": {},
	"transfers_in_event":          {},
	"transfers_out_event":         {},
	"expected_goals":              {},
	"expected_assists":            {},
	"expected_goal_involvements":  {},
}

// DerivedStats are per-player value metrics computed from season totals.
type DerivedStats struct {
	PointsPer90             float64 `json:"points_per_90"`
	PointsPerMillion        float64 `json:"points_per_million"`
	PointsPerGamePerMillion float64 `json:"points_per_game_per_million"`
	Appearances90           float64 `json:"appearances_90"`
}

// ComputeDerived calculates the derived metrics for a player. Appearances
// are 90-minute equivalents; divisions by zero yield zero.
func ComputeDerived(p player.Player) DerivedStats {
	var out DerivedStats

	appearances := float64(p.Minutes) / 90.0
	out.Appearances90 = round1(appearances)

	if appearances > 0 {
		out.PointsPer90 = round2(float64(p.TotalPoints) / appearances)
	}
	if cost := p.Price(); cost > 0 {
		out.PointsPerMillion = round2(float64(p.TotalPoints) / cost)
		out.PointsPerGamePerMillion = round2(parseFloat(p.PointsPerGame) / cost)
	}
	return out
}

// PlayerCard is a player enriched with team info and derived metrics.
type PlayerCard struct {
	Player  player.Player `json:"player"`
	Team    team.Team     `json:"team"`
	Derived DerivedStats  `json:"derived_stats"`
}

// StatsService answers player-statistics queries against the current
// snapshot. It never touches the upstream API.
type StatsService struct {
	snapshots *snapshot.Handle
	rules     rules.KnowledgeBase
}

func NewStatsService(snapshots *snapshot.Handle) *StatsService {
	return &StatsService{
		snapshots: snapshots,
		rules:     rules.Default(),
	}
}

// PlayerStats resolves a player by name and returns the enriched card.
func (s *StatsService) PlayerStats(ctx context.Context, name string) (PlayerCard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerStats")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		return PlayerCard{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return PlayerCard{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	p, err := snap.PlayerByName(name)
	if err != nil {
		return PlayerCard{}, fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	return s.card(snap, p), nil
}

// PlayerStatsByID returns the enriched card for a pool player id.
func (s *StatsService) PlayerStatsByID(ctx context.Context, id int) (PlayerCard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerStatsByID")
	defer span.End()

	snap, err := s.snapshots.Current()
	if err != nil {
		return PlayerCard{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	p, err := snap.PlayerByID(id)
	if err != nil {
		return PlayerCard{}, fmt.Errorf("%w: player %d", ErrNotFound, id)
	}
	return s.card(snap, p), nil
}

// ComparePlayers resolves each name and returns the cards in input order.
func (s *StatsService) ComparePlayers(ctx context.Context, names []string) ([]PlayerCard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.ComparePlayers")
	defer span.End()

	if len(names) < 2 {
		return nil, fmt.Errorf("%w: at least two player names are required", ErrInvalidInput)
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	out := make([]PlayerCard, 0, len(names))
	for _, name := range names {
		p, err := snap.PlayerByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: player %q", ErrNotFound, name)
		}
		out = append(out, s.card(snap, p))
	}
	return out, nil
}

// BestPlayersInput filters and orders the best-players query. Zero values
// take defaults: sort by points_per_million, five results, ninety minutes
// minimum. A nil MinMinutes means the default; an explicit zero keeps the
// pool unfiltered.
type BestPlayersInput struct {
	Position   string
	SortBy     string
	Count      int
	MinMinutes *int
}

// BestPlayers returns the top pool players for a metric, optionally
// filtered by position and minimum minutes played.
func (s *StatsService) BestPlayers(ctx context.Context, input BestPlayersInput) ([]PlayerCard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.BestPlayers")
	defer span.End()

	if input.SortBy == "" {
		input.SortBy = "points_per_million"
	}
	if _, ok := validPlayerMetrics[input.SortBy]; !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, input.SortBy)
	}
	if input.Count <= 0 {
		input.Count = defaultBestPlayersCount
	}
	if input.Count > maxBestPlayersCount {
		input.Count = maxBestPlayersCount
	}
	minMinutes := defaultMinMinutes
	if input.MinMinutes != nil {
		minMinutes = *input.MinMinutes
		if minMinutes < 0 {
			minMinutes = 0
		}
	}

	var position player.Position
	if input.Position != "" {
		position = player.Position(strings.ToUpper(strings.TrimSpace(input.Position)))
		if _, ok := player.AllPositions[position]; !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
		}
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	var cards []PlayerCard
	for _, p := range snap.Players() {
		if p.Minutes < minMinutes {
			continue
		}
		if position != "" && p.Position != position {
			continue
		}
		cards = append(cards, s.card(snap, p))
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return metricValue(cards[i], input.SortBy) > metricValue(cards[j], input.SortBy)
	})
	if len(cards) > input.Count {
		cards = cards[:input.Count]
	}
	return cards, nil
}

// TransferTrends returns the most transferred players this gameweek.
// Direction is "in" or "out".
func (s *StatsService) TransferTrends(ctx context.Context, direction string, count int) ([]PlayerCard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatsService.TransferTrends")
	defer span.End()

	metric := "transfers_in_event"
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "in":
	case "out":
		metric = "transfers_out_event"
	default:
		return nil, fmt.Errorf("%w: direction must be \"in\" or \"out\"", ErrInvalidInput)
	}
	if count <= 0 {
		count = 10
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	cards := make([]PlayerCard, 0)
	for _, p := range snap.Players() {
		cards = append(cards, s.card(snap, p))
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return metricValue(cards[i], metric) > metricValue(cards[j], metric)
	})
	if len(cards) > count {
		cards = cards[:count]
	}
	return cards, nil
}

// Rules returns the static rules knowledge base.
func (s *StatsService) Rules() rules.KnowledgeBase {
	return s.rules
}

// RulesSummary returns the conversational rules text.
func (s *StatsService) RulesSummary() string {
	return s.rules.Summary
}

func (s *StatsService) card(snap *snapshot.Snapshot, p player.Player) PlayerCard {
	card := PlayerCard{Player: p, Derived: ComputeDerived(p)}
	if t, err := snap.TeamByID(p.TeamID); err == nil {
		card.Team = t
	}
	return card
}

func metricValue(card PlayerCard, metric string) float64 {
	p := card.Player
	switch metric {
	case "total_points":
		return float64(p.TotalPoints)
	case "form":
		return parseFloat(p.Form)
	case "minutes":
		return float64(p.Minutes)
	case "goals_scored":
		return float64(p.GoalsScored)
	case "assists":
		return float64(p.Assists)
	case "clean_sheets":
		return float64(p.CleanSheets)
	case "bonus":
		return float64(p.Bonus)
	case "bps":
		return float64(p.BPS)
	case "ict_index":
		return parseFloat(p.ICTIndex)
	case "selected_by_percent":
		return parseFloat(p.SelectedByPercent)
	case "points_per_90":
		return card.Derived.PointsPer90
	case "points_per_million":
		return card.Derived.PointsPerMillion
	case "points_per_game_per_million":
		return card.Derived.PointsPerGamePerMillion
	case "transfers_in_event":
		return float64(p.TransfersInEvent)
	case "transfers_out_event":
		return float64(p.TransfersOutEvent)
	case "expected_goals":
		return parseFloat(p.ExpectedGoals)
	case "expected_assists":
		return parseFloat(p.ExpectedAssists)
	case "expected_goal_involvements":
		return parseFloat(p.ExpectedGoalInvolvements)
	default:
		return 0
	}
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
