package fixture

import (
	"fmt"
	"time"
)

// Fixture is a scheduled or played match, keyed by the upstream fixture id.
// Event and kickoff are nil for fixtures not yet assigned to a round.
type Fixture struct {
	ID    int  `bson:"_id" json:"id"`
	Code  int  `bson:"code" json:"code"`
	Event *int `bson:"event" json:"event,omitempty"`

	TeamH      int  `bson:"team_h" json:"team_h"`
	TeamA      int  `bson:"team_a" json:"team_a"`
	TeamHScore *int `bson:"team_h_score" json:"team_h_score,omitempty"`
	TeamAScore *int `bson:"team_a_score" json:"team_a_score,omitempty"`

	KickoffTime         *time.Time `bson:"kickoff_time" json:"kickoff_time,omitempty"`
	Started             bool       `bson:"started" json:"started"`
	Finished            bool       `bson:"finished" json:"finished"`
	FinishedProvisional bool       `bson:"finished_provisional" json:"finished_provisional"`
	Minutes             int        `bson:"minutes" json:"minutes"`

	TeamHDifficulty int `bson:"team_h_difficulty" json:"team_h_difficulty"`
	TeamADifficulty int `bson:"team_a_difficulty" json:"team_a_difficulty"`

	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// Involves reports whether the given team plays in this fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.TeamH == teamID || f.TeamA == teamID
}

// DifficultyFor returns the difficulty rating faced by the given team,
// or zero when the team is not part of the fixture.
func (f Fixture) DifficultyFor(teamID int) int {
	switch teamID {
	case f.TeamH:
		return f.TeamHDifficulty
	case f.TeamA:
		return f.TeamADifficulty
	default:
		return 0
	}
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.TeamH <= 0 || f.TeamA <= 0 {
		return fmt.Errorf("fixture teams are required")
	}
	if f.TeamH == f.TeamA {
		return fmt.Errorf("fixture teams must differ")
	}

	return nil
}
