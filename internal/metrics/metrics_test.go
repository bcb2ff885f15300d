package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/tests"
)

func TestKD(t *testing.T) {
	for _, tc := range []struct {
		kills, deaths int
		want          float64
	}{
		{5, 0, 5.0},
		{0, 0, 0.0},
		{10, 5, 2.0},
		{3, 4, 0.75},
	} {
		require.InDelta(t, tc.want, metrics.KD(tc.kills, tc.deaths), 1e-9, "%d/%d", tc.kills, tc.deaths)
	}
}

func TestWinRate(t *testing.T) {
	require.InDelta(t, 0.0, metrics.WinRate(0, 0), 1e-9)
	require.InDelta(t, 75.0, metrics.WinRate(30, 10), 1e-9)
	require.InDelta(t, 100.0, metrics.WinRate(4, 0), 1e-9)
}

func TestPlayerKD(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	alpha := fixture.CreateTeam("Alpha")
	bravo := fixture.CreateTeam("Bravo")
	dust := fixture.CreateMap("Dust")
	ace := fixture.CreatePlayer(alpha.ID, "ace")
	idle := fixture.CreatePlayer(alpha.ID, "idle")

	first, _ := fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 10, 3)
	second, _ := fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 5, 8)
	fixture.CreateStat(first.ID, ace.ID, 6, 2, 1)
	fixture.CreateStat(second.ID, ace.ID, 4, 3, 0)

	totals, err := engine.PlayerKD(t.Context(), ace.ID)
	require.NoError(t, err)
	require.Equal(t, 10, totals.Kills)
	require.Equal(t, 5, totals.Deaths)
	require.Equal(t, 1, totals.Bombs)
	require.InDelta(t, 2.0, totals.KD, 1e-9)

	none, err := engine.PlayerKD(t.Context(), idle.ID)
	require.NoError(t, err)
	require.Zero(t, none.KD)

	_, err = engine.PlayerKD(t.Context(), 999)
	require.ErrorIs(t, err, errs.ErrPlayerNotFound)
}

func TestTeamWinRateAndWins(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	alpha := fixture.CreateTeam("Alpha")
	bravo := fixture.CreateTeam("Bravo")
	idle := fixture.CreateTeam("Idle")
	dust := fixture.CreateMap("Dust")
	nuke := fixture.CreateMap("Nuke")

	fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 16, 4)
	fixture.CreateMatch(nuke.ID, alpha.ID, bravo.ID, 14, 6)
	fixture.CreateMatch(nuke.ID, alpha.ID, bravo.ID, 5, 5)

	totals, err := engine.TeamWinRate(t.Context(), alpha.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 35, totals.RoundsWon)
	require.Equal(t, 15, totals.RoundsLost)
	require.InDelta(t, 70.0, totals.WinRate, 1e-9)
	require.Equal(t, 2, totals.Wins, "a draw is not a win")
	require.Zero(t, totals.Losses, "a draw is not a loss")

	onDust, err := engine.TeamWinRate(t.Context(), alpha.ID, &dust.ID)
	require.NoError(t, err)
	require.InDelta(t, 80.0, onDust.WinRate, 1e-9)

	empty, err := engine.TeamWinRate(t.Context(), idle.ID, nil)
	require.NoError(t, err)
	require.Zero(t, empty.WinRate)

	beaten, err := engine.TeamWinRate(t.Context(), bravo.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 2, beaten.Losses)

	wins, err := engine.TeamWins(t.Context(), bravo.ID)
	require.NoError(t, err)
	require.Zero(t, wins)

	_, err = engine.TeamWinRate(t.Context(), 999, nil)
	require.ErrorIs(t, err, errs.ErrTeamNotFound)
}

func TestLeaderboardBreaksTiesByNameIgnoringCase(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	zeta := fixture.CreateTeam("zeta")
	alpha := fixture.CreateTeam("Alpha")
	mid := fixture.CreateTeam("mid")
	loser := fixture.CreateTeam("Loser")
	dust := fixture.CreateMap("Dust")

	fixture.CreateMatch(dust.ID, zeta.ID, loser.ID, 10, 2)
	fixture.CreateMatch(dust.ID, alpha.ID, loser.ID, 10, 2)
	fixture.CreateMatch(dust.ID, mid.ID, loser.ID, 10, 2)
	fixture.CreateMatch(dust.ID, mid.ID, loser.ID, 10, 2)

	board, err := engine.Leaderboard(t.Context())
	require.NoError(t, err)
	require.Len(t, board, 4)

	var names []string
	for _, standing := range board {
		names = append(names, standing.Name)
	}

	require.Equal(t, []string{"mid", "Alpha", "zeta", "Loser"}, names)
	require.Equal(t, 2, board[0].Wins)
	require.Equal(t, 1, board[0].Rank)
	require.Equal(t, 4, board[3].Rank)
}

func TestExportProjections(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	alpha := fixture.CreateTeam("Alpha")
	bravo := fixture.CreateTeam("Bravo")
	fixture.CreateTeam("Idle")
	dust := fixture.CreateMap("Dust")
	nuke := fixture.CreateMap("Nuke")
	fixture.CreateMap("Unplayed")
	ace := fixture.CreatePlayer(alpha.ID, "ace")
	bolt := fixture.CreatePlayer(bravo.ID, "bolt")
	fixture.CreatePlayer(bravo.ID, "bench")

	rowA, rowB := fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 10, 3)
	fixture.CreateMatch(nuke.ID, alpha.ID, bravo.ID, 13, 11)
	fixture.CreateStat(rowA.ID, ace.ID, 10, 5, 0)
	fixture.CreateStat(rowB.ID, bolt.ID, 9, 0, 0)

	players, err := engine.BestPlayers(t.Context())
	require.NoError(t, err)
	require.Len(t, players, 3)
	require.Equal(t, "bolt", players[0].Name)
	require.InDelta(t, 9.0, players[0].KD, 1e-9)
	require.Equal(t, "ace", players[1].Name)
	require.Equal(t, "bench", players[2].Name)

	teams, err := engine.BestTeams(t.Context())
	require.NoError(t, err)
	require.Len(t, teams, 3)
	require.Equal(t, "Alpha", teams[0].Name)
	require.Equal(t, 23, teams[0].RoundsWon)
	require.Equal(t, 14, teams[0].RoundsLost)
	require.Equal(t, 2, teams[0].Wins)
	require.Zero(t, teams[0].Losses)
	require.Equal(t, "Bravo", teams[1].Name)
	require.Zero(t, teams[1].Wins)
	require.Equal(t, 2, teams[1].Losses)
	require.Equal(t, "Idle", teams[2].Name)

	maps, err := engine.MostPlayedMaps(t.Context())
	require.NoError(t, err)
	require.Len(t, maps, 3)
	require.Equal(t, "Nuke", maps[0].Name)
	require.Equal(t, 48, maps[0].Rounds)
	require.Equal(t, 26, maps[1].Rounds)
	require.Zero(t, maps[2].Rounds)
}

func TestTeamAnalysis(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	alpha := fixture.CreateTeam("Alpha")
	bravo := fixture.CreateTeam("Bravo")
	dust := fixture.CreateMap("Dust")
	nuke := fixture.CreateMap("nuke")
	ace := fixture.CreatePlayer(alpha.ID, "ace")
	fixture.CreatePlayer(alpha.ID, "Bench")

	rowA, _ := fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 12, 4)
	fixture.CreateMatch(nuke.ID, alpha.ID, bravo.ID, 3, 9)
	fixture.CreateStat(rowA.ID, ace.ID, 8, 4, 2)

	analysis, err := engine.TeamAnalysis(t.Context(), alpha.ID)
	require.NoError(t, err)
	require.Equal(t, "Alpha", analysis.Team.Name)
	require.Equal(t, 1, analysis.Overall.Wins)

	require.Len(t, analysis.Maps, 2)
	require.Equal(t, "Dust", analysis.Maps[0].Name)
	require.InDelta(t, 75.0, analysis.Maps[0].WinRate, 1e-9)
	require.Equal(t, "nuke", analysis.Maps[1].Name)
	require.InDelta(t, 25.0, analysis.Maps[1].WinRate, 1e-9)

	require.Len(t, analysis.Players, 2)
	require.Equal(t, "ace", analysis.Players[0].Name)
	require.InDelta(t, 2.0, analysis.Players[0].KD, 1e-9)
	require.Zero(t, analysis.Players[1].KD)

	_, err = engine.TeamAnalysis(t.Context(), 999)
	require.ErrorIs(t, err, errs.ErrTeamNotFound)
}
