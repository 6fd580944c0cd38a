package videoprinter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benchboost/benchboost/internal/domain/news"
)

const sampleFragment = `
<p>******* Tuesday 25 August *******</p>
<p>PRICE CHANGE: <span style="color:yellow">Saka (ARS)</span> has risen to <span style="color:yellow">&#163;10.2M</span></p>
<p>STATUS: <span style="color:yellow">Haaland (MCI)</span> <span style="color:cyan">75% chance of playing</span></p>
<p>GOAL: <span style="color:cyan">LIV</span> 2-1 <span style="color:cyan">ARS</span> <span style="color:yellow">Salah</span> 5 pts. Tot 9 Pts</p>
<p>YELLOW: <span style="color:yellow">Rice (ARS)</span> -1 pts. Tot 2 Pts</p>
<p>FPL: FT LIV 2-1 ARS</p>
`

func TestParse_ClassifiesFeedEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	updates := Parse(sampleFragment, now)

	if len(updates) != 5 {
		t.Fatalf("parsed %d updates, want 5", len(updates))
	}

	price := updates[0]
	if price.Kind != news.KindPriceChange {
		t.Fatalf("kind = %s, want price_change", price.Kind)
	}
	if price.Player != "Saka" || price.Team != "ARS" {
		t.Fatalf("player/team = %q/%q", price.Player, price.Team)
	}
	if price.Direction != news.PriceRise {
		t.Fatalf("direction = %s, want rise", price.Direction)
	}
	if price.NewPrice != 10.2 {
		t.Fatalf("new price = %.1f, want 10.2", price.NewPrice)
	}
	if price.Date != "Tuesday 25 August" {
		t.Fatalf("date = %q", price.Date)
	}
	if price.ID == "" {
		t.Fatal("expected fingerprint id")
	}

	status := updates[1]
	if status.Kind != news.KindStatus || status.Status != "75% chance of playing" {
		t.Fatalf("status update = %+v", status)
	}

	goal := updates[2]
	if goal.Kind != news.KindGoal {
		t.Fatalf("kind = %s, want goal", goal.Kind)
	}
	if goal.HomeTeam != "LIV" || goal.AwayTeam != "ARS" {
		t.Fatalf("teams = %q/%q", goal.HomeTeam, goal.AwayTeam)
	}
	if goal.HomeScore == nil || *goal.HomeScore != 2 || goal.AwayScore == nil || *goal.AwayScore != 1 {
		t.Fatalf("score = %v-%v", goal.HomeScore, goal.AwayScore)
	}
	if goal.Player != "Salah" || goal.Points == nil || *goal.Points != 5 || goal.TotalPoints == nil || *goal.TotalPoints != 9 {
		t.Fatalf("scorer = %+v", goal)
	}

	card := updates[3]
	if card.Kind != news.KindYellowCard || card.Player != "Rice" || card.Points == nil || *card.Points != -1 {
		t.Fatalf("card = %+v", card)
	}

	ft := updates[4]
	if ft.Kind != news.KindMatchUpdate || ft.Content != "FT LIV 2-1 ARS" {
		t.Fatalf("match update = %+v", ft)
	}
}

func TestParse_SameEntryProducesSameFingerprint(t *testing.T) {
	t.Parallel()

	first := Parse(sampleFragment, time.Now())
	second := Parse(sampleFragment, time.Now().Add(time.Minute))

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("parse sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("fingerprint changed for entry %d", i)
		}
	}
}

func TestClient_FetchUpdates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"details": "<p>STATUS: <span style=\"color:yellow\">Palmer (CHE)</span> <span style=\"color:cyan\">knock</span></p>", "tme": "12:30"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		FeedURL: server.URL,
		Timeout: 2 * time.Second,
	})

	feed, err := client.FetchUpdates(context.Background())
	if err != nil {
		t.Fatalf("FetchUpdates error: %v", err)
	}
	if feed.Timestamp != "12:30" {
		t.Fatalf("timestamp = %q", feed.Timestamp)
	}
	if len(feed.Updates) != 1 || feed.Updates[0].Player != "Palmer" {
		t.Fatalf("updates = %+v", feed.Updates)
	}
}
