package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/snapshot"
)

func statsFixture(t *testing.T) *StatsService {
	t.Helper()

	players := []player.Player{
		{
			ID: 1, WebName: "Saka", FirstName: "Bukayo", SecondName: "Saka",
			TeamID: 1, Position: player.PositionMidfielder, Status: player.StatusAvailable,
			NowCost: 100, TotalPoints: 180, Minutes: 2700, PointsPerGame: "6.0", Form: "7.2",
		},
		{
			ID: 2, WebName: "Haaland", FirstName: "Erling", SecondName: "Haaland",
			TeamID: 2, Position: player.PositionForward, Status: player.StatusAvailable,
			NowCost: 150, TotalPoints: 210, Minutes: 2430, PointsPerGame: "7.8", Form: "8.1",
		},
		{
			ID: 3, WebName: "Benched", FirstName: "Barely", SecondName: "Played",
			TeamID: 2, Position: player.PositionForward, Status: player.StatusAvailable,
			NowCost: 45, TotalPoints: 400, Minutes: 45, PointsPerGame: "1.0",
		},
	}
	teams := []team.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS"},
		{ID: 2, Name: "Manchester City", ShortName: "MCI"},
	}

	handle := snapshot.NewHandle()
	handle.Swap(snapshot.Build(players, teams, nil, nil))
	return NewStatsService(handle)
}

func TestComputeDerived(t *testing.T) {
	t.Parallel()

	derived := ComputeDerived(player.Player{
		NowCost: 100, TotalPoints: 180, Minutes: 2700, PointsPerGame: "6.0",
	})
	require.InDelta(t, 6.0, derived.PointsPer90, 0.001)
	require.InDelta(t, 18.0, derived.PointsPerMillion, 0.001)
	require.InDelta(t, 0.6, derived.PointsPerGamePerMillion, 0.001)
	require.InDelta(t, 30.0, derived.Appearances90, 0.001)
}

func TestComputeDerived_ZeroMinutes(t *testing.T) {
	t.Parallel()

	derived := ComputeDerived(player.Player{NowCost: 50, TotalPoints: 0})
	require.Zero(t, derived.PointsPer90)
	require.Zero(t, derived.Appearances90)
}

func TestStatsService_PlayerStats(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)

	card, err := svc.PlayerStats(t.Context(), "haaland")
	require.NoError(t, err)
	require.Equal(t, 2, card.Player.ID)
	require.Equal(t, "MCI", card.Team.ShortName)
	require.Greater(t, card.Derived.PointsPerMillion, 0.0)

	_, err = svc.PlayerStats(t.Context(), "nobody at all")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PlayerStats(t.Context(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsService_PlayerStats_SnapshotNotReady(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(snapshot.NewHandle())
	_, err := svc.PlayerStats(t.Context(), "Saka")
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestStatsService_ComparePlayers(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)

	cards, err := svc.ComparePlayers(t.Context(), []string{"Saka", "Haaland"})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "Saka", cards[0].Player.WebName)

	_, err = svc.ComparePlayers(t.Context(), []string{"Saka"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsService_BestPlayers(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)

	// Default min-minutes filter drops the 45-minute player despite the
	// inflated points total.
	cards, err := svc.BestPlayers(t.Context(), BestPlayersInput{SortBy: "total_points"})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "Haaland", cards[0].Player.WebName)

	cards, err = svc.BestPlayers(t.Context(), BestPlayersInput{Position: "mid"})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, "Saka", cards[0].Player.WebName)

	_, err = svc.BestPlayers(t.Context(), BestPlayersInput{SortBy: "nonsense"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BestPlayers(t.Context(), BestPlayersInput{Position: "striker"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsService_BestPlayers_ExplicitZeroMinMinutes(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)

	zero := 0
	cards, err := svc.BestPlayers(t.Context(), BestPlayersInput{SortBy: "total_points", MinMinutes: &zero})
	require.NoError(t, err)
	require.Len(t, cards, 3)
	require.Equal(t, "Benched", cards[0].Player.WebName)
}

func TestStatsService_TransferTrends(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)

	if _, err := svc.TransferTrends(t.Context(), "sideways", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	cards, err := svc.TransferTrends(t.Context(), "in", 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)
}

func TestStatsService_Rules(t *testing.T) {
	t.Parallel()

	svc := statsFixture(t)
	kb := svc.Rules()
	require.Equal(t, 15, kb.TeamRules.SquadSize)
	require.Equal(t, 3, kb.TeamRules.MaxPlayersPerTeam)
	require.NotEmpty(t, svc.RulesSummary())
}
