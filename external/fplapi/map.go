package fplapi

import (
	"time"

	"github.com/benchboost/benchboost/internal/domain/fixture"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
)

// Conversions from wire models to domain models. now stamps LastUpdated so
// one ingestion run shares a single timestamp across collections.

func MapPlayers(elements []ElementItem, now time.Time) []player.Player {
	out := make([]player.Player, 0, len(elements))
	for _, e := range elements {
		position, err := player.PositionFromElementType(e.ElementType)
		if err != nil {
			continue
		}
		out = append(out, player.Player{
			ID:                       e.ID,
			WebName:                  e.WebName,
			FirstName:                e.FirstName,
			SecondName:               e.SecondName,
			TeamID:                   e.Team,
			Position:                 position,
			Status:                   e.Status,
			News:                     e.News,
			NewsAdded:                e.NewsAdded,
			NowCost:                  e.NowCost,
			CostChangeEvent:          e.CostChangeEvent,
			CostChangeStart:          e.CostChangeStart,
			TotalPoints:              e.TotalPoints,
			EventPoints:              e.EventPoints,
			PointsPerGame:            e.PointsPerGame,
			Form:                     e.Form,
			SelectedByPercent:        e.SelectedByPercent,
			Minutes:                  e.Minutes,
			GoalsScored:              e.GoalsScored,
			Assists:                  e.Assists,
			CleanSheets:              e.CleanSheets,
			GoalsConceded:            e.GoalsConceded,
			OwnGoals:                 e.OwnGoals,
			PenaltiesSaved:           e.PenaltiesSaved,
			PenaltiesMissed:          e.PenaltiesMissed,
			YellowCards:              e.YellowCards,
			RedCards:                 e.RedCards,
			Saves:                    e.Saves,
			Bonus:                    e.Bonus,
			BPS:                      e.BPS,
			Influence:                e.Influence,
			Creativity:               e.Creativity,
			Threat:                   e.Threat,
			ICTIndex:                 e.ICTIndex,
			ExpectedGoals:            e.ExpectedGoals,
			ExpectedAssists:          e.ExpectedAssists,
			ExpectedGoalInvolvements: e.ExpectedGoalInvolvements,
			ChanceOfPlayingNextRound: e.ChanceOfPlayingNextRound,
			TransfersInEvent:         e.TransfersInEvent,
			TransfersOutEvent:        e.TransfersOutEvent,
			DreamteamCount:           e.DreamteamCount,
			InDreamteam:              e.InDreamteam,
			LastUpdated:              now,
		})
	}
	return out
}

func MapTeams(items []TeamItem, now time.Time) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, t := range items {
		out = append(out, team.Team{
			ID:                  t.ID,
			Name:                t.Name,
			ShortName:           t.ShortName,
			Code:                t.Code,
			Strength:            t.Strength,
			StrengthOverallHome: t.StrengthOverallHome,
			StrengthOverallAway: t.StrengthOverallAway,
			StrengthAttackHome:  t.StrengthAttackHome,
			StrengthAttackAway:  t.StrengthAttackAway,
			StrengthDefenceHome: t.StrengthDefenceHome,
			StrengthDefenceAway: t.StrengthDefenceAway,
			Position:            t.Position,
			Played:              t.Played,
			Win:                 t.Win,
			Draw:                t.Draw,
			Loss:                t.Loss,
			Points:              t.Points,
			LastUpdated:         now,
		})
	}
	return out
}

func MapGameweeks(events []EventItem, now time.Time) []gameweek.Gameweek {
	out := make([]gameweek.Gameweek, 0, len(events))
	for _, e := range events {
		gw := gameweek.Gameweek{
			ID:                e.ID,
			Name:              e.Name,
			Finished:          e.Finished,
			DataChecked:       e.DataChecked,
			IsPrevious:        e.IsPrevious,
			IsCurrent:         e.IsCurrent,
			IsNext:            e.IsNext,
			AverageEntryScore: e.AverageEntryScore,
			HighestScore:      e.HighestScore,
			TransfersMade:     e.TransfersMade,
			MostCaptained:     e.MostCaptained,
			MostSelected:      e.MostSelected,
			MostTransferredIn: e.MostTransferredIn,
			TopElement:        e.TopElement,
			LastUpdated:       now,
		}
		if e.TopElementInfo != nil {
			points := e.TopElementInfo.Points
			gw.TopElementPoints = &points
		}
		if parsed := parseUpstreamTime(e.DeadlineTime); parsed != nil {
			gw.DeadlineTime = *parsed
		}
		for _, chip := range e.ChipPlays {
			gw.ChipPlays = append(gw.ChipPlays, gameweek.ChipPlay{
				ChipName:  chip.ChipName,
				NumPlayed: chip.NumPlayed,
			})
		}
		out = append(out, gw)
	}
	return out
}

func MapFixtures(items []FixtureItem, now time.Time) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, f := range items {
		out = append(out, fixture.Fixture{
			ID:                  f.ID,
			Code:                f.Code,
			Event:               f.Event,
			TeamH:               f.TeamH,
			TeamA:               f.TeamA,
			TeamHScore:          f.TeamHScore,
			TeamAScore:          f.TeamAScore,
			KickoffTime:         parseUpstreamTime(f.KickoffTime),
			Started:             f.Started,
			Finished:            f.Finished,
			FinishedProvisional: f.FinishedProvisional,
			Minutes:             f.Minutes,
			TeamHDifficulty:     f.TeamHDifficulty,
			TeamADifficulty:     f.TeamADifficulty,
			LastUpdated:         now,
		})
	}
	return out
}

func parseUpstreamTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	v := parsed.UTC()
	return &v
}
