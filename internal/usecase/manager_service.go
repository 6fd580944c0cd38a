package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/benchboost/benchboost/external/fplapi"
	"github.com/benchboost/benchboost/internal/snapshot"
)

const topLeaguesShown = 5

// managerFetcher is the slice of the upstream client the manager service
// needs.
type managerFetcher interface {
	Entry(ctx context.Context, entryID int) (fplapi.Entry, error)
	EntryHistory(ctx context.Context, entryID int) (fplapi.EntryHistory, error)
	EntryPicks(ctx context.Context, entryID, event int) (fplapi.Picks, error)
	EventLive(ctx context.Context, event int) (fplapi.EventLive, error)
}

// LeagueSummary is one classic league a manager competes in.
type LeagueSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Rank     int    `json:"rank"`
	LastRank int    `json:"last_rank"`
}

// ManagerProfile is a manager's season summary.
type ManagerProfile struct {
	EntryID        int             `json:"entry_id"`
	ManagerName    string          `json:"manager_name"`
	TeamName       string          `json:"team_name"`
	Region         string          `json:"region"`
	CurrentEvent   int             `json:"current_event"`
	OverallPoints  int             `json:"overall_points"`
	OverallRank    int             `json:"overall_rank"`
	EventPoints    int             `json:"event_points"`
	EventRank      int             `json:"event_rank"`
	TeamValue      float64         `json:"team_value"`
	Bank           float64         `json:"bank"`
	TotalTransfers int             `json:"total_transfers"`
	LatestRound    *RoundSummary   `json:"latest_round,omitempty"`
	PastSeasons    []SeasonSummary `json:"past_seasons,omitempty"`
	ChipsPlayed    []ChipPlayed    `json:"chips_played,omitempty"`
	TopLeagues     []LeagueSummary `json:"top_leagues,omitempty"`
}

// RoundSummary is one gameweek row from a manager's history.
type RoundSummary struct {
	Event              int     `json:"event"`
	Points             int     `json:"points"`
	TotalPoints        int     `json:"total_points"`
	Rank               int     `json:"rank"`
	OverallRank        int     `json:"overall_rank"`
	Bank               float64 `json:"bank"`
	Value              float64 `json:"value"`
	EventTransfers     int     `json:"event_transfers"`
	EventTransfersCost int     `json:"event_transfers_cost"`
	PointsOnBench      int     `json:"points_on_bench"`
}

type SeasonSummary struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type ChipPlayed struct {
	Name  string `json:"name"`
	Event int    `json:"event"`
}

// SquadPick is one pick enriched with pool data and live points. Points
// carries the multiplier; bench players (multiplier zero) show their base
// points instead of zero.
type SquadPick struct {
	Element       int     `json:"element"`
	SquadPosition int     `json:"squad_position"`
	Multiplier    int     `json:"multiplier"`
	IsCaptain     bool    `json:"is_captain"`
	IsViceCaptain bool    `json:"is_vice_captain"`
	PlayerName    string  `json:"player_name"`
	FullName      string  `json:"full_name"`
	TeamName      string  `json:"team_name"`
	TeamShort     string  `json:"team_short"`
	Position      string  `json:"position"`
	Points        int     `json:"points"`
	BasePoints    int     `json:"base_points"`
	Price         float64 `json:"price"`
	Form          string  `json:"form"`
	TotalPoints   int     `json:"total_points"`
	News          string  `json:"news,omitempty"`
}

// GameweekSquad is a manager's picks for one gameweek, split into the
// starting eleven and the bench.
type GameweekSquad struct {
	EntryID            int                   `json:"entry_id"`
	Event              int                   `json:"event"`
	ActiveChip         string                `json:"active_chip,omitempty"`
	Points             int                   `json:"points"`
	TotalPoints        int                   `json:"total_points"`
	Rank               int                   `json:"rank"`
	OverallRank        int                   `json:"overall_rank"`
	Bank               float64               `json:"bank"`
	Value              float64               `json:"value"`
	EventTransfers     int                   `json:"event_transfers"`
	EventTransfersCost int                   `json:"event_transfers_cost"`
	StartingXI         []SquadPick           `json:"starting_xi"`
	Bench              []SquadPick           `json:"bench"`
	AutomaticSubs      []fplapi.AutomaticSub `json:"automatic_subs,omitempty"`
	Captain            string                `json:"captain,omitempty"`
	ViceCaptain        string                `json:"vice_captain,omitempty"`
}

// ManagerService reads manager data through the upstream API and enriches
// it with the current snapshot.
type ManagerService struct {
	fetcher   managerFetcher
	snapshots *snapshot.Handle
}

func NewManagerService(fetcher managerFetcher, snapshots *snapshot.Handle) *ManagerService {
	return &ManagerService{fetcher: fetcher, snapshots: snapshots}
}

// Profile returns the manager summary with the latest history round and
// the five best-ranked classic leagues.
func (s *ManagerService) Profile(ctx context.Context, entryID int) (ManagerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Profile")
	defer span.End()

	if entryID <= 0 {
		return ManagerProfile{}, fmt.Errorf("%w: entry id must be positive", ErrInvalidInput)
	}

	entry, err := s.fetcher.Entry(ctx, entryID)
	if err != nil {
		return ManagerProfile{}, fmt.Errorf("fetch entry %d: %w", entryID, mapProviderError(err))
	}

	profile := ManagerProfile{
		EntryID:        entry.ID,
		ManagerName:    entry.PlayerFirstName + " " + entry.PlayerLastName,
		TeamName:       entry.Name,
		Region:         entry.PlayerRegionName,
		CurrentEvent:   entry.CurrentEvent,
		OverallPoints:  entry.SummaryOverallPoints,
		OverallRank:    entry.SummaryOverallRank,
		EventPoints:    entry.SummaryEventPoints,
		EventRank:      entry.SummaryEventRank,
		TeamValue:      float64(entry.LastDeadlineValue) / 10,
		Bank:           float64(entry.LastDeadlineBank) / 10,
		TotalTransfers: entry.LastDeadlineTotalTransfers,
		TopLeagues:     topLeagues(entry.Leagues.Classic),
	}

	// History is best effort; the summary alone is still a useful profile.
	history, err := s.fetcher.EntryHistory(ctx, entryID)
	if err == nil {
		if n := len(history.Current); n > 0 {
			latest := history.Current[n-1]
			profile.LatestRound = &RoundSummary{
				Event:              latest.Event,
				Points:             latest.Points,
				TotalPoints:        latest.TotalPoints,
				Rank:               latest.Rank,
				OverallRank:        latest.OverallRank,
				Bank:               float64(latest.Bank) / 10,
				Value:              float64(latest.Value) / 10,
				EventTransfers:     latest.EventTransfers,
				EventTransfersCost: latest.EventTransfersCost,
				PointsOnBench:      latest.PointsOnBench,
			}
		}
		for _, past := range history.Past {
			profile.PastSeasons = append(profile.PastSeasons, SeasonSummary{
				SeasonName:  past.SeasonName,
				TotalPoints: past.TotalPoints,
				Rank:        past.Rank,
			})
		}
		for _, chip := range history.Chips {
			profile.ChipsPlayed = append(profile.ChipsPlayed, ChipPlayed{Name: chip.Name, Event: chip.Event})
		}
	}

	return profile, nil
}

// Squad returns the manager's picks for a gameweek enriched with player
// and live-points data. Event zero means the current gameweek.
func (s *ManagerService) Squad(ctx context.Context, entryID, event int) (GameweekSquad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Squad")
	defer span.End()

	if entryID <= 0 {
		return GameweekSquad{}, fmt.Errorf("%w: entry id must be positive", ErrInvalidInput)
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return GameweekSquad{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	if event <= 0 {
		current, err := snap.CurrentGameweek()
		if err != nil {
			return GameweekSquad{}, fmt.Errorf("%w: current gameweek unknown", ErrNotFound)
		}
		event = current.ID
	}

	picks, err := s.fetcher.EntryPicks(ctx, entryID, event)
	if err != nil {
		return GameweekSquad{}, fmt.Errorf("fetch picks for entry %d event %d: %w", entryID, event, mapProviderError(err))
	}

	livePoints := make(map[int]int)
	if live, err := s.fetcher.EventLive(ctx, event); err == nil {
		for _, element := range live.Elements {
			livePoints[element.ID] = element.Stats.TotalPoints
		}
	}

	squad := GameweekSquad{
		EntryID:            entryID,
		Event:              event,
		ActiveChip:         picks.ActiveChip,
		Points:             picks.EntryHistory.Points,
		TotalPoints:        picks.EntryHistory.TotalPoints,
		Rank:               picks.EntryHistory.Rank,
		OverallRank:        picks.EntryHistory.OverallRank,
		Bank:               float64(picks.EntryHistory.Bank) / 10,
		Value:              float64(picks.EntryHistory.Value) / 10,
		EventTransfers:     picks.EntryHistory.EventTransfers,
		EventTransfersCost: picks.EntryHistory.EventTransfersCost,
		AutomaticSubs:      picks.AutomaticSubs,
	}

	for _, pick := range picks.Picks {
		enriched := s.enrichPick(snap, pick, livePoints)
		if enriched.IsCaptain {
			squad.Captain = enriched.PlayerName
		}
		if enriched.IsViceCaptain {
			squad.ViceCaptain = enriched.PlayerName
		}
		if pick.Position <= 11 {
			squad.StartingXI = append(squad.StartingXI, enriched)
		} else {
			squad.Bench = append(squad.Bench, enriched)
		}
	}

	return squad, nil
}

func (s *ManagerService) enrichPick(snap *snapshot.Snapshot, pick fplapi.PickItem, livePoints map[int]int) SquadPick {
	base := livePoints[pick.Element]
	points := base * pick.Multiplier
	if pick.Multiplier == 0 {
		points = base
	}

	enriched := SquadPick{
		Element:       pick.Element,
		SquadPosition: pick.Position,
		Multiplier:    pick.Multiplier,
		IsCaptain:     pick.IsCaptain,
		IsViceCaptain: pick.IsViceCaptain,
		PlayerName:    "Unknown",
		Points:        points,
		BasePoints:    base,
	}

	p, err := snap.PlayerByID(pick.Element)
	if err != nil {
		return enriched
	}
	enriched.PlayerName = p.WebName
	enriched.FullName = p.FullName()
	enriched.Position = string(p.Position)
	enriched.Price = p.Price()
	enriched.Form = p.Form
	enriched.TotalPoints = p.TotalPoints
	enriched.News = p.News
	if t, err := snap.TeamByID(p.TeamID); err == nil {
		enriched.TeamName = t.Name
		enriched.TeamShort = t.ShortName
	}
	return enriched
}

func topLeagues(classic []fplapi.ClassicLeagueEntry) []LeagueSummary {
	ranked := make([]fplapi.ClassicLeagueEntry, 0, len(classic))
	for _, league := range classic {
		if league.EntryRank > 0 {
			ranked = append(ranked, league)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].EntryRank < ranked[j].EntryRank })
	if len(ranked) > topLeaguesShown {
		ranked = ranked[:topLeaguesShown]
	}

	out := make([]LeagueSummary, 0, len(ranked))
	for _, league := range ranked {
		out = append(out, LeagueSummary{
			ID:       league.ID,
			Name:     league.Name,
			Rank:     league.EntryRank,
			LastRank: league.EntryLastRank,
		})
	}
	return out
}
