package player

import (
	"fmt"
	"time"
)

// Position represents the fantasy position category derived from the
// upstream element_type field.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the upstream element_type (1..4) to a Position.
func PositionFromElementType(elementType int) (Position, error) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	default:
		return "", fmt.Errorf("invalid element type: %d", elementType)
	}
}

// Status codes used by the upstream API. "u" marks unavailable players that
// are filtered out of the pool.
const (
	StatusAvailable   = "a"
	StatusDoubtful    = "d"
	StatusInjured     = "i"
	StatusSuspended   = "s"
	StatusUnavailable = "u"
	StatusNotInSquad  = "n"
)

// Player is a selectable athlete in the fantasy pool, keyed by the upstream
// element id. Prices are in tenths of a million, as upstream stores them.
type Player struct {
	ID         int      `bson:"_id" json:"id"`
	WebName    string   `bson:"web_name" json:"web_name"`
	FirstName  string   `bson:"first_name" json:"first_name"`
	SecondName string   `bson:"second_name" json:"second_name"`
	TeamID     int      `bson:"team_id" json:"team_id"`
	Position   Position `bson:"position" json:"position"`
	Status     string   `bson:"status" json:"status"`
	News       string   `bson:"news" json:"news,omitempty"`
	NewsAdded  string   `bson:"news_added" json:"news_added,omitempty"`

	NowCost         int `bson:"now_cost" json:"now_cost"`
	CostChangeEvent int `bson:"cost_change_event" json:"cost_change_event"`
	CostChangeStart int `bson:"cost_change_start" json:"cost_change_start"`

	TotalPoints       int    `bson:"total_points" json:"total_points"`
	EventPoints       int    `bson:"event_points" json:"event_points"`
	PointsPerGame     string `bson:"points_per_game" json:"points_per_game"`
	Form              string `bson:"form" json:"form"`
	SelectedByPercent string `bson:"selected_by_percent" json:"selected_by_percent"`

	Minutes         int `bson:"minutes" json:"minutes"`
	GoalsScored     int `bson:"goals_scored" json:"goals_scored"`
	Assists         int `bson:"assists" json:"assists"`
	CleanSheets     int `bson:"clean_sheets" json:"clean_sheets"`
	GoalsConceded   int `bson:"goals_conceded" json:"goals_conceded"`
	OwnGoals        int `bson:"own_goals" json:"own_goals"`
	PenaltiesSaved  int `bson:"penalties_saved" json:"penalties_saved"`
	PenaltiesMissed int `bson:"penalties_missed" json:"penalties_missed"`
	YellowCards     int `bson:"yellow_cards" json:"yellow_cards"`
	RedCards        int `bson:"red_cards" json:"red_cards"`
	Saves           int `bson:"saves" json:"saves"`
	Bonus           int `bson:"bonus" json:"bonus"`
	BPS             int `bson:"bps" json:"bps"`

	Influence  string `bson:"influence" json:"influence"`
	Creativity string `bson:"creativity" json:"creativity"`
	Threat     string `bson:"threat" json:"threat"`
	ICTIndex   string `bson:"ict_index" json:"ict_index"`

	ExpectedGoals            string `bson:"expected_goals" json:"expected_goals"`
	ExpectedAssists          string `bson:"expected_assists" json:"expected_assists"`
	ExpectedGoalInvolvements string `bson:"expected_goal_involvements" json:"expected_goal_involvements"`

	ChanceOfPlayingNextRound *int `bson:"chance_of_playing_next_round" json:"chance_of_playing_next_round,omitempty"`
	TransfersInEvent         int  `bson:"transfers_in_event" json:"transfers_in_event"`
	TransfersOutEvent        int  `bson:"transfers_out_event" json:"transfers_out_event"`
	DreamteamCount           int  `bson:"dreamteam_count" json:"dreamteam_count"`
	InDreamteam              bool `bson:"in_dreamteam" json:"in_dreamteam"`

	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// FullName joins first and second names, falling back to the web name.
func (p Player) FullName() string {
	if p.FirstName == "" && p.SecondName == "" {
		return p.WebName
	}
	if p.FirstName == "" {
		return p.SecondName
	}
	if p.SecondName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.SecondName
}

// Price is the current price in millions.
func (p Player) Price() float64 {
	return float64(p.NowCost) / 10
}

// Available reports whether the player can still be selected.
func (p Player) Available() bool {
	return p.Status != StatusUnavailable
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.WebName == "" {
		return fmt.Errorf("player web name is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.NowCost < 0 {
		return fmt.Errorf("player cost must not be negative")
	}

	return nil
}
