package gameweek

import (
	"fmt"
	"time"
)

// Gameweek is one scoring round of the season, keyed by the upstream event id.
type Gameweek struct {
	ID           int       `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	DeadlineTime time.Time `bson:"deadline_time" json:"deadline_time"`

	Finished    bool `bson:"finished" json:"finished"`
	DataChecked bool `bson:"data_checked" json:"data_checked"`
	IsPrevious  bool `bson:"is_previous" json:"is_previous"`
	IsCurrent   bool `bson:"is_current" json:"is_current"`
	IsNext      bool `bson:"is_next" json:"is_next"`

	AverageEntryScore int  `bson:"average_entry_score" json:"average_entry_score"`
	HighestScore      *int `bson:"highest_score" json:"highest_score,omitempty"`
	TransfersMade     int  `bson:"transfers_made" json:"transfers_made"`

	MostCaptained     *int `bson:"most_captained" json:"most_captained,omitempty"`
	MostSelected      *int `bson:"most_selected" json:"most_selected,omitempty"`
	MostTransferredIn *int `bson:"most_transferred_in" json:"most_transferred_in,omitempty"`
	TopElement        *int `bson:"top_element" json:"top_element,omitempty"`
	TopElementPoints  *int `bson:"top_element_points" json:"top_element_points,omitempty"`

	ChipPlays []ChipPlay `bson:"chip_plays" json:"chip_plays,omitempty"`

	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// ChipPlay counts how many managers played a chip in the round.
type ChipPlay struct {
	ChipName  string `bson:"chip_name" json:"chip_name"`
	NumPlayed int    `bson:"num_played" json:"num_played"`
}

func (g Gameweek) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("gameweek id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("gameweek name is required")
	}
	if g.DeadlineTime.IsZero() {
		return fmt.Errorf("gameweek deadline is required")
	}

	return nil
}
