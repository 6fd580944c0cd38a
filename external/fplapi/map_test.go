package fplapi

import (
	"testing"
	"time"

	"github.com/benchboost/benchboost/internal/domain/player"
)

func TestMapPlayers_SkipsUnknownElementType(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	got := MapPlayers([]ElementItem{
		{ID: 1, WebName: "Saka", Team: 1, ElementType: 3, NowCost: 105},
		{ID: 2, WebName: "Broken", Team: 1, ElementType: 9},
	}, now)

	if len(got) != 1 {
		t.Fatalf("mapped %d players, want 1", len(got))
	}
	if got[0].Position != player.PositionMidfielder {
		t.Fatalf("position = %s, want MID", got[0].Position)
	}
	if !got[0].LastUpdated.Equal(now) {
		t.Fatalf("last updated = %v, want %v", got[0].LastUpdated, now)
	}
}

func TestMapGameweeks_ParsesDeadlineAndTopElement(t *testing.T) {
	t.Parallel()

	got := MapGameweeks([]EventItem{
		{
			ID:             1,
			Name:           "Gameweek 1",
			DeadlineTime:   "2026-08-14T17:30:00Z",
			TopElementInfo: &TopElement{ID: 10, Points: 15},
		},
	}, time.Now())

	if len(got) != 1 {
		t.Fatalf("mapped %d gameweeks, want 1", len(got))
	}
	want := time.Date(2026, 8, 14, 17, 30, 0, 0, time.UTC)
	if !got[0].DeadlineTime.Equal(want) {
		t.Fatalf("deadline = %v, want %v", got[0].DeadlineTime, want)
	}
	if got[0].TopElementPoints == nil || *got[0].TopElementPoints != 15 {
		t.Fatalf("top element points = %v, want 15", got[0].TopElementPoints)
	}
}

func TestMapFixtures_ParsesKickoff(t *testing.T) {
	t.Parallel()

	event := 2
	got := MapFixtures([]FixtureItem{
		{ID: 7, Event: &event, TeamH: 1, TeamA: 2, KickoffTime: "2026-08-22T14:00:00Z"},
		{ID: 8, TeamH: 3, TeamA: 4},
	}, time.Now())

	if len(got) != 2 {
		t.Fatalf("mapped %d fixtures, want 2", len(got))
	}
	if got[0].KickoffTime == nil || !got[0].KickoffTime.Equal(time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("kickoff = %v", got[0].KickoffTime)
	}
	if got[1].KickoffTime != nil || got[1].Event != nil {
		t.Fatalf("expected unscheduled fixture to keep nil event and kickoff")
	}
}
