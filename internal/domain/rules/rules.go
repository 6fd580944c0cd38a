// Package rules holds the static FPL rules knowledge base served to the
// assistant. Values mirror the official game rules for the current season.
package rules

// TeamRules covers squad composition and budget constraints.
type TeamRules struct {
	MaxPlayersPerTeam    int     `json:"max_players_per_team"`
	SquadSize            int     `json:"squad_size"`
	StartingXI           int     `json:"starting_xi"`
	BenchSize            int     `json:"bench_size"`
	FreeTransfersPerWeek int     `json:"free_transfers_per_week"`
	TransferCost         int     `json:"transfer_cost"`
	StartingBudget       float64 `json:"starting_budget"`
}

// GoalPoints is points per goal by position.
type GoalPoints struct {
	Goalkeeper int `json:"goalkeeper"`
	Defender   int `json:"defender"`
	Midfielder int `json:"midfielder"`
	Forward    int `json:"forward"`
}

// CleanSheetPoints is points per clean sheet by position.
type CleanSheetPoints struct {
	Goalkeeper int `json:"goalkeeper"`
	Defender   int `json:"defender"`
	Midfielder int `json:"midfielder"`
	Forward    int `json:"forward"`
}

// Scoring covers the per-event scoring system.
type Scoring struct {
	Goals              GoalPoints       `json:"goals"`
	Assist             int              `json:"assist"`
	CleanSheet         CleanSheetPoints `json:"clean_sheet"`
	YellowCard         int              `json:"yellow_card"`
	RedCard            int              `json:"red_card"`
	GoalsConcededPer2  int              `json:"goals_conceded_per_2"`
	SavesPer3          int              `json:"saves_per_3"`
	MaxBonusPerMatch   int              `json:"max_bonus_per_match"`
	CaptainMultiplier  int              `json:"captain_multiplier"`
	TripleCaptainValue int              `json:"triple_captain_multiplier"`
}

// KnowledgeBase bundles the rules handed to the assistant tools.
type KnowledgeBase struct {
	TeamRules TeamRules `json:"team_rules"`
	Scoring   Scoring   `json:"scoring_system"`
	Summary   string    `json:"summary"`
}

// Default returns the knowledge base with official values.
func Default() KnowledgeBase {
	return KnowledgeBase{
		TeamRules: TeamRules{
			MaxPlayersPerTeam:    3,
			SquadSize:            15,
			StartingXI:           11,
			BenchSize:            4,
			FreeTransfersPerWeek: 1,
			TransferCost:         4,
			StartingBudget:       100.0,
		},
		Scoring: Scoring{
			Goals:              GoalPoints{Goalkeeper: 6, Defender: 6, Midfielder: 5, Forward: 4},
			Assist:             3,
			CleanSheet:         CleanSheetPoints{Goalkeeper: 4, Defender: 4, Midfielder: 1, Forward: 0},
			YellowCard:         -1,
			RedCard:            -3,
			GoalsConcededPer2:  -1,
			SavesPer3:          1,
			MaxBonusPerMatch:   3,
			CaptainMultiplier:  2,
			TripleCaptainValue: 3,
		},
		Summary: summaryText,
	}
}

const summaryText = `FPL Rules and Regulations:

Team Building:
- Squad of 15 players: 2 goalkeepers, 5 defenders, 5 midfielders, 3 forwards.
- Starting XI of 11 players each gameweek, 4 on the bench.
- Maximum 3 players from any one club.
- Starting budget of 100.0m.

Transfers:
- 1 free transfer per gameweek, bankable up to a limit.
- Each extra transfer costs 4 points.
- Wildcard and Free Hit chips allow unlimited transfers (Free Hit reverts after one gameweek).
- Transfer deadline is 90 minutes before the first kickoff of the gameweek.
- Prices change daily based on net transfers in and out.

Scoring:
- Goal: 6 points (GK/DEF), 5 points (MID), 4 points (FWD).
- Assist: 3 points.
- Clean sheet: 4 points (GK/DEF), 1 point (MID), 0 (FWD).
- Yellow card: -1 point. Red card: -3 points.
- Every 2 goals conceded: -1 point (GK/DEF). Every 3 saves: 1 point (GK).
- Playing up to 60 minutes: 1 point. 60+ minutes: 2 points.
- Bonus: 1-3 extra points to the highest BPS scorers per match.

Captaincy and Chips:
- Captain scores double points; vice-captain steps in if the captain does not play.
- Triple Captain chip: 3x captain points for one gameweek.
- Bench Boost chip: all 15 players score for one gameweek.

Strategy Concepts:
- Differentials: low-ownership players (under 15%) with high upside.
- Template players: high-ownership picks (over 40%), consistent and premium.
- Value picks: budget players (typically under 6.0m) with regular starts and good fixtures.
- Form reads: short term is the last 3-4 gameweeks, medium term 6-8.`
