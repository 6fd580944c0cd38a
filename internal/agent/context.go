package agent

import (
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/snapshot"
	"github.com/benchboost/benchboost/internal/usecase"
)

// Context builders turn structured data into compact text the model can
// cite directly. Tables beat prose for token density.

var difficultyLabels = [...]string{"Very Easy", "Easy", "Medium", "Hard", "Very Hard"}

func buildPlayerContext(card usecase.PlayerCard) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	p := card.Player
	writeLine(buf, "Player: %s (%s, %s)", p.WebName, card.Team.ShortName, p.Position)
	writeLine(buf, "  Full name: %s", p.FullName())
	writeLine(buf, "  Price: £%.1fm | Total points: %d | Form: %s | Owned: %s%%",
		p.Price(), p.TotalPoints, p.Form, p.SelectedByPercent)
	writeLine(buf, "  Minutes: %d | Goals: %d | Assists: %d | Clean sheets: %d | Bonus: %d",
		p.Minutes, p.GoalsScored, p.Assists, p.CleanSheets, p.Bonus)
	writeLine(buf, "  Per 90: %.2f pts | Value: %.2f pts/£m | xG: %s | xA: %s",
		card.Derived.PointsPer90, card.Derived.PointsPerMillion, p.ExpectedGoals, p.ExpectedAssists)
	if p.News != "" {
		writeLine(buf, "  News: %s", p.News)
	}

	return buf.String()
}

func buildComparisonTable(cards []usecase.PlayerCard) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "| Player | Team | Price | Form | Total Pts | Pts/90 | Pts/£m | Selected By |")
	writeLine(buf, "| :--- | :--- | :--- | :--- | :--- | :--- | :--- | :--- |")
	for _, card := range cards {
		p := card.Player
		writeLine(buf, "| %s | %s | £%.1fm | %s | %d | %.2f | %.2f | %s%% |",
			p.FullName(), card.Team.ShortName, p.Price(), p.Form,
			p.TotalPoints, card.Derived.PointsPer90, card.Derived.PointsPerMillion,
			p.SelectedByPercent)
	}

	return buf.String()
}

func buildTopPlayersSummary(cards []usecase.PlayerCard, metric string) string {
	if len(cards) == 0 {
		return "No players matched the filters."
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "Top players by %s:", metric)
	for i, card := range cards {
		p := card.Player
		writeLine(buf, "%d. %s (%s, %s) - £%.1fm, %d pts, form %s",
			i+1, p.WebName, card.Team.ShortName, p.Position, p.Price(), p.TotalPoints, p.Form)
	}

	return buf.String()
}

func buildGameweekSummary(gw gameweek.Gameweek) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "Gameweek %d: %s", gw.ID, gw.Name)
	writeLine(buf, "  Deadline: %s", gw.DeadlineTime.Format("Mon, 02 Jan 2006 15:04 MST"))
	writeLine(buf, "  Status: %s", gameweekStatus(gw))
	if gw.Finished {
		writeLine(buf, "  Average score: %d", gw.AverageEntryScore)
		if gw.HighestScore != nil {
			writeLine(buf, "  Highest score: %d", *gw.HighestScore)
		}
	}
	if len(gw.ChipPlays) > 0 {
		writeLine(buf, "  Chips played:")
		for _, chip := range gw.ChipPlays {
			writeLine(buf, "    - %s: %d times", chip.ChipName, chip.NumPlayed)
		}
	}

	return buf.String()
}

func gameweekStatus(gw gameweek.Gameweek) string {
	switch {
	case gw.Finished:
		return "Finished"
	case gw.IsCurrent:
		return "In Progress"
	default:
		return "Upcoming"
	}
}

func buildTeamSummary(t team.Team) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "Team: %s (%s)", t.Name, t.ShortName)
	writeLine(buf, "  Strength overall: %d", t.Strength)
	writeLine(buf, "  Strength attack (H/A): %d/%d", t.StrengthAttackHome, t.StrengthAttackAway)
	writeLine(buf, "  Strength defence (H/A): %d/%d", t.StrengthDefenceHome, t.StrengthDefenceAway)
	if t.Position > 0 {
		writeLine(buf, "  League position: %d (P%d W%d D%d L%d, %d pts)",
			t.Position, t.Played, t.Win, t.Draw, t.Loss, t.Points)
	}

	return buf.String()
}

func buildFixtureDifficulty(snap *snapshot.Snapshot, t team.Team, limit int) string {
	fromEvent := 1
	if current, err := snap.CurrentGameweek(); err == nil {
		fromEvent = current.ID
	}
	upcoming := snap.UpcomingFixtures(t.ID, fromEvent, limit)
	if len(upcoming) == 0 {
		return fmt.Sprintf("%s has no upcoming fixtures.", t.Name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "Upcoming fixtures for %s:", t.Name)
	for _, f := range upcoming {
		venue := "H"
		opponentID := f.TeamA
		if f.TeamA == t.ID {
			venue = "A"
			opponentID = f.TeamH
		}
		opponentName := "???"
		if opponent, err := snap.TeamByID(opponentID); err == nil {
			opponentName = opponent.ShortName
		}

		event := "?"
		if f.Event != nil {
			event = strconv.Itoa(*f.Event)
		}
		difficulty := f.DifficultyFor(t.ID)
		writeLine(buf, "  GW%s: vs %s (%s) - Difficulty: %s (%d/5)",
			event, opponentName, venue, difficultyLabel(difficulty), difficulty)
	}

	return buf.String()
}

func difficultyLabel(difficulty int) string {
	if difficulty < 1 || difficulty > len(difficultyLabels) {
		return "Unknown"
	}
	return difficultyLabels[difficulty-1]
}

func writeLine(buf *bytebufferpool.ByteBuffer, format string, args ...any) {
	if buf.Len() > 0 {
		_ = buf.WriteByte('\n')
	}
	_, _ = fmt.Fprintf(buf, format, args...)
}
