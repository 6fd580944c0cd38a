package team

import (
	"fmt"
	"time"
)

// Team is a Premier League club, keyed by the upstream team id.
type Team struct {
	ID        int    `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	ShortName string `bson:"short_name" json:"short_name"`
	Code      int    `bson:"code" json:"code"`

	Strength            int `bson:"strength" json:"strength"`
	StrengthOverallHome int `bson:"strength_overall_home" json:"strength_overall_home"`
	StrengthOverallAway int `bson:"strength_overall_away" json:"strength_overall_away"`
	StrengthAttackHome  int `bson:"strength_attack_home" json:"strength_attack_home"`
	StrengthAttackAway  int `bson:"strength_attack_away" json:"strength_attack_away"`
	StrengthDefenceHome int `bson:"strength_defence_home" json:"strength_defence_home"`
	StrengthDefenceAway int `bson:"strength_defence_away" json:"strength_defence_away"`

	Position int `bson:"position" json:"position"`
	Played   int `bson:"played" json:"played"`
	Win      int `bson:"win" json:"win"`
	Draw     int `bson:"draw" json:"draw"`
	Loss     int `bson:"loss" json:"loss"`
	Points   int `bson:"points" json:"points"`

	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ShortName == "" {
		return fmt.Errorf("team short name is required")
	}

	return nil
}
