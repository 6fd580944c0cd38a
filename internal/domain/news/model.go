package news

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// Kind classifies a videoprinter feed entry.
type Kind string

const (
	KindPriceChange Kind = "price_change"
	KindStatus      Kind = "status"
	KindGoal        Kind = "goal"
	KindYellowCard  Kind = "yellow_card"
	KindRedCard     Kind = "red_card"
	KindSaves       Kind = "saves"
	KindBonus       Kind = "bonus"
	KindTeamNews    Kind = "team_news"
	KindMatchUpdate Kind = "match_update"
)

// PriceDirection marks whether a price change event is a rise or a fall.
type PriceDirection string

const (
	PriceRise PriceDirection = "rise"
	PriceFall PriceDirection = "fall"
)

// Update is a single entry from the price-change and match-event feed.
// Fields are populated per kind; unused fields stay zero.
type Update struct {
	ID   string `bson:"_id" json:"id"`
	Kind Kind   `bson:"kind" json:"kind"`
	Date string `bson:"date" json:"date,omitempty"`

	Player string `bson:"player" json:"player,omitempty"`
	Team   string `bson:"team" json:"team,omitempty"`

	// Price change.
	Direction PriceDirection `bson:"direction" json:"direction,omitempty"`
	NewPrice  float64        `bson:"new_price" json:"new_price,omitempty"`

	// Player status.
	Status string `bson:"status" json:"status,omitempty"`

	// Match events.
	HomeTeam  string `bson:"home_team" json:"home_team,omitempty"`
	AwayTeam  string `bson:"away_team" json:"away_team,omitempty"`
	HomeScore *int   `bson:"home_score" json:"home_score,omitempty"`
	AwayScore *int   `bson:"away_score" json:"away_score,omitempty"`

	Points      *int `bson:"points" json:"points,omitempty"`
	TotalPoints *int `bson:"total_points" json:"total_points,omitempty"`

	Assist       string `bson:"assist" json:"assist,omitempty"`
	AssistPoints *int   `bson:"assist_points" json:"assist_points,omitempty"`
	AssistTotal  *int   `bson:"assist_total" json:"assist_total,omitempty"`

	BonusAwards []BonusAward `bson:"bonus_awards" json:"bonus_awards,omitempty"`

	// Team news and match updates carry free text.
	Content string `bson:"content" json:"content,omitempty"`

	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
}

// BonusAward is one player's share of the bonus allocation in a match.
type BonusAward struct {
	Player      string `bson:"player" json:"player"`
	BonusPoints int    `bson:"bonus_points" json:"bonus_points"`
	TotalPoints int    `bson:"total_points" json:"total_points"`
}

// Fingerprint derives a stable id from the identifying fields so repeated
// scrapes of the same feed entry upsert instead of duplicating.
func (u Update) Fingerprint() string {
	sum := sha1.Sum([]byte(fmt.Sprintf(
		"%s|%s|%s|%s|%s|%s|%s|%.1f|%s",
		u.Kind, u.Date, u.Player, u.Team, u.HomeTeam, u.AwayTeam, u.Status, u.NewPrice, u.Content,
	)))
	return hex.EncodeToString(sum[:])
}

func (u Update) Validate() error {
	if u.Kind == "" {
		return fmt.Errorf("news update kind is required")
	}
	return nil
}
