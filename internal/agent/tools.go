package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	openai "github.com/sashabaranov/go-openai"

	"github.com/benchboost/benchboost/external/livefpl"
	"github.com/benchboost/benchboost/internal/domain/news"
	"github.com/benchboost/benchboost/internal/snapshot"
	"github.com/benchboost/benchboost/internal/usecase"
)

// liveRankScraper is the slice of the livefpl scraper the tools need.
type liveRankScraper interface {
	Scrape(ctx context.Context, entryID int) (livefpl.LiveRank, error)
}

// newsLister is the slice of the news service the tools need.
type newsLister interface {
	List(ctx context.Context, limit int) ([]news.Update, error)
}

// Toolset exposes snapshot, stats, manager and scraper reads as
// function-calling tools. Tool failures are returned as error payloads
// instead of Go errors so the model can recover conversationally.
type Toolset struct {
	stats    *usecase.StatsService
	managers *usecase.ManagerService
	news     newsLister
	snaps    *snapshot.Handle
	liveRank liveRankScraper
}

func NewToolset(
	stats *usecase.StatsService,
	managers *usecase.ManagerService,
	news newsLister,
	snaps *snapshot.Handle,
	liveRank liveRankScraper,
) *Toolset {
	return &Toolset{
		stats:    stats,
		managers: managers,
		news:     news,
		snaps:    snaps,
		liveRank: liveRank,
	}
}

func schema(raw string) json.RawMessage { return json.RawMessage(raw) }

// Definitions lists every tool in the OpenAI function-calling format.
func (t *Toolset) Definitions() []openai.Tool {
	defs := []openai.FunctionDefinition{
		{
			Name:        "get_player_info",
			Description: "Get a compact profile for one player: price, points, form, ownership, per-90 and value metrics, injury news.",
			Parameters: schema(`{"type":"object","properties":{
				"player_name":{"type":"string","description":"Player web name or full name, e.g. \"Saka\" or \"Erling Haaland\""}
			},"required":["player_name"]}`),
		},
		{
			Name:        "get_player_stats",
			Description: "Get raw statistics for one player as JSON, including derived metrics.",
			Parameters: schema(`{"type":"object","properties":{
				"player_name":{"type":"string"}
			},"required":["player_name"]}`),
		},
		{
			Name:        "compare_players",
			Description: "Compare two or more players side by side. Returns a Markdown table.",
			Parameters: schema(`{"type":"object","properties":{
				"player_names":{"type":"array","items":{"type":"string"},"minItems":2}
			},"required":["player_names"]}`),
		},
		{
			Name:        "get_top_players",
			Description: "List the top players by a metric, optionally filtered by position (GK, DEF, MID, FWD).",
			Parameters: schema(`{"type":"object","properties":{
				"position":{"type":"string","enum":["GK","DEF","MID","FWD"]},
				"metric":{"type":"string","description":"e.g. total_points, form, points_per_90, points_per_million"},
				"count":{"type":"integer","minimum":1,"maximum":50}
			}}`),
		},
		{
			Name:        "get_best_players",
			Description: "Find the best-value players: position filter, sort metric and minimum minutes played.",
			Parameters: schema(`{"type":"object","properties":{
				"position":{"type":"string","enum":["GK","DEF","MID","FWD"]},
				"sort_by":{"type":"string","description":"Metric to sort by, default points_per_million"},
				"count":{"type":"integer","minimum":1,"maximum":50},
				"min_minutes":{"type":"integer","minimum":0}
			}}`),
		},
		{
			Name:        "get_fpl_rules",
			Description: "Get the FPL rules: squad building, scoring, transfers, chips.",
			Parameters:  schema(`{"type":"object","properties":{}}`),
		},
		{
			Name:        "get_current_gameweek",
			Description: "Get the current gameweek: deadline, status, averages, chip usage.",
			Parameters:  schema(`{"type":"object","properties":{}}`),
		},
		{
			Name:        "get_gameweek_summary",
			Description: "Get a formatted summary for a gameweek. Omit gameweek_id for the current one.",
			Parameters: schema(`{"type":"object","properties":{
				"gameweek_id":{"type":"integer","minimum":1,"maximum":38}
			}}`),
		},
		{
			Name:        "get_team_summary",
			Description: "Get a Premier League club's strength ratings and league position.",
			Parameters: schema(`{"type":"object","properties":{
				"team_name":{"type":"string","description":"Full or short name, e.g. \"Arsenal\" or \"ARS\""}
			},"required":["team_name"]}`),
		},
		{
			Name:        "get_fixture_difficulty",
			Description: "Analyze a club's upcoming fixture difficulty.",
			Parameters: schema(`{"type":"object","properties":{
				"team_name":{"type":"string"},
				"num_fixtures":{"type":"integer","minimum":1,"maximum":10}
			},"required":["team_name"]}`),
		},
		{
			Name:        "get_manager_info",
			Description: "Get a manager's profile: team name, overall rank and points, team value, best mini-leagues.",
			Parameters: schema(`{"type":"object","properties":{
				"entry_id":{"type":"integer","minimum":1}
			},"required":["entry_id"]}`),
		},
		{
			Name:        "get_manager_squad",
			Description: "Get a manager's squad for a gameweek with live points, captain and bench. Use FIRST for captaincy, bench or transfer advice.",
			Parameters: schema(`{"type":"object","properties":{
				"entry_id":{"type":"integer","minimum":1},
				"event":{"type":"integer","minimum":1,"maximum":38,"description":"Gameweek, defaults to the current one"}
			},"required":["entry_id"]}`),
		},
		{
			Name:        "get_transfer_trends",
			Description: "List the most transferred-in or transferred-out players this gameweek.",
			Parameters: schema(`{"type":"object","properties":{
				"direction":{"type":"string","enum":["in","out"],"description":"Defaults to in"},
				"count":{"type":"integer","minimum":1,"maximum":50}
			}}`),
		},
		{
			Name:        "get_player_news",
			Description: "Get recent price changes, injury statuses and match events from the news feed.",
			Parameters: schema(`{"type":"object","properties":{
				"limit":{"type":"integer","minimum":1,"maximum":100}
			}}`),
		},
		{
			Name:        "get_live_rank",
			Description: "Scrape a manager's live gameweek performance: rank arrow, safety score, differentials and threats.",
			Parameters: schema(`{"type":"object","properties":{
				"entry_id":{"type":"integer","minimum":1}
			},"required":["entry_id"]}`),
		},
	}

	tools := make([]openai.Tool, 0, len(defs))
	for i := range defs {
		tools = append(tools, openai.Tool{Type: openai.ToolTypeFunction, Function: &defs[i]})
	}
	return tools
}

// Call dispatches one tool invocation. The returned string goes straight
// back to the model; failures are reported inside the payload.
func (t *Toolset) Call(ctx context.Context, name, arguments string) string {
	result, err := t.dispatch(ctx, name, arguments)
	if err != nil {
		return toolError(err)
	}
	return result
}

func (t *Toolset) dispatch(ctx context.Context, name, arguments string) (string, error) {
	switch name {
	case "get_player_info":
		var args struct {
			PlayerName string `json:"player_name"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		card, err := t.stats.PlayerStats(ctx, args.PlayerName)
		if err != nil {
			return "", err
		}
		return buildPlayerContext(card), nil

	case "get_player_stats":
		var args struct {
			PlayerName string `json:"player_name"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		card, err := t.stats.PlayerStats(ctx, args.PlayerName)
		if err != nil {
			return "", err
		}
		return encodeResult(card)

	case "compare_players":
		var args struct {
			PlayerNames []string `json:"player_names"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		cards, err := t.stats.ComparePlayers(ctx, args.PlayerNames)
		if err != nil {
			return "", err
		}
		return buildComparisonTable(cards), nil

	case "get_top_players":
		var args struct {
			Position string `json:"position"`
			Metric   string `json:"metric"`
			Count    int    `json:"count"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		if args.Metric == "" {
			args.Metric = "total_points"
		}
		if args.Count <= 0 {
			args.Count = 10
		}
		cards, err := t.stats.BestPlayers(ctx, usecase.BestPlayersInput{
			Position: args.Position,
			SortBy:   args.Metric,
			Count:    args.Count,
		})
		if err != nil {
			return "", err
		}
		return buildTopPlayersSummary(cards, args.Metric), nil

	case "get_best_players":
		var args struct {
			Position   string `json:"position"`
			SortBy     string `json:"sort_by"`
			Count      int    `json:"count"`
			MinMinutes *int   `json:"min_minutes"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		cards, err := t.stats.BestPlayers(ctx, usecase.BestPlayersInput{
			Position:   args.Position,
			SortBy:     args.SortBy,
			Count:      args.Count,
			MinMinutes: args.MinMinutes,
		})
		if err != nil {
			return "", err
		}
		return buildComparisonTable(cards), nil

	case "get_fpl_rules":
		return t.stats.RulesSummary(), nil

	case "get_current_gameweek":
		snap, err := t.snaps.Current()
		if err != nil {
			return "", err
		}
		gw, err := snap.CurrentGameweek()
		if err != nil {
			return "", err
		}
		return encodeResult(gw)

	case "get_gameweek_summary":
		var args struct {
			GameweekID int `json:"gameweek_id"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		snap, err := t.snaps.Current()
		if err != nil {
			return "", err
		}
		gw, err := snap.CurrentGameweek()
		if args.GameweekID > 0 {
			gw, err = snap.GameweekByID(args.GameweekID)
		}
		if err != nil {
			return "", err
		}
		return buildGameweekSummary(gw), nil

	case "get_team_summary":
		var args struct {
			TeamName string `json:"team_name"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		snap, err := t.snaps.Current()
		if err != nil {
			return "", err
		}
		club, err := snap.TeamByName(args.TeamName)
		if err != nil {
			return "", fmt.Errorf("team %q not found", args.TeamName)
		}
		return buildTeamSummary(club), nil

	case "get_fixture_difficulty":
		var args struct {
			TeamName    string `json:"team_name"`
			NumFixtures int    `json:"num_fixtures"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		snap, err := t.snaps.Current()
		if err != nil {
			return "", err
		}
		club, err := snap.TeamByName(args.TeamName)
		if err != nil {
			return "", fmt.Errorf("team %q not found", args.TeamName)
		}
		if args.NumFixtures <= 0 {
			args.NumFixtures = 5
		}
		return buildFixtureDifficulty(snap, club, args.NumFixtures), nil

	case "get_manager_info":
		var args struct {
			EntryID int `json:"entry_id"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		profile, err := t.managers.Profile(ctx, args.EntryID)
		if err != nil {
			return "", err
		}
		return encodeResult(profile)

	case "get_manager_squad":
		var args struct {
			EntryID int `json:"entry_id"`
			Event   int `json:"event"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		squad, err := t.managers.Squad(ctx, args.EntryID, args.Event)
		if err != nil {
			return "", err
		}
		return encodeResult(squad)

	case "get_transfer_trends":
		var args struct {
			Direction string `json:"direction"`
			Count     int    `json:"count"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		if args.Direction == "" {
			args.Direction = "in"
		}
		if args.Count <= 0 {
			args.Count = 10
		}
		cards, err := t.stats.TransferTrends(ctx, args.Direction, args.Count)
		if err != nil {
			return "", err
		}
		return buildComparisonTable(cards), nil

	case "get_player_news":
		var args struct {
			Limit int `json:"limit"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		updates, err := t.news.List(ctx, args.Limit)
		if err != nil {
			return "", err
		}
		return encodeResult(updates)

	case "get_live_rank":
		var args struct {
			EntryID int `json:"entry_id"`
		}
		if err := decodeArgs(arguments, &args); err != nil {
			return "", err
		}
		if t.liveRank == nil {
			return "", fmt.Errorf("live rank scraping is disabled")
		}
		rank, err := t.liveRank.Scrape(ctx, args.EntryID)
		if err != nil {
			return "", err
		}
		return encodeResult(rank)

	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func decodeArgs(arguments string, target any) error {
	if arguments == "" {
		arguments = "{}"
	}
	if err := sonic.UnmarshalString(arguments, target); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}

func encodeResult(value any) (string, error) {
	out, err := sonic.MarshalString(value)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return out, nil
}

func toolError(err error) string {
	payload, marshalErr := sonic.MarshalString(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return `{"error":"tool failed"}`
	}
	return payload
}
