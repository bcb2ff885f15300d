package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/export"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/tests"
)

func TestParseKind(t *testing.T) {
	kind, err := export.ParseKind("teams")
	require.NoError(t, err)
	require.Equal(t, export.KindTeams, kind)
	require.Equal(t, "best_teams.csv", kind.FileName())

	_, err = export.ParseKind("weapons")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRowFormatting(t *testing.T) {
	players := export.PlayerRows([]metrics.PlayerTotals{{Name: "ace", Kills: 10, Deaths: 3, KD: metrics.KD(10, 3)}})
	require.Equal(t, [][]string{
		{"Player", "Total_Kills", "Total_Deaths", "KD"},
		{"ace", "10", "3", "3.33"},
	}, players)

	teams := export.TeamRows([]metrics.TeamTotals{{Name: "Alpha", RoundsWon: 30, RoundsLost: 10, Wins: 2, Losses: 1, WinRate: 75}})
	require.Equal(t, []string{"Alpha", "2", "1", "75.00"}, teams[1])

	maps := export.MapRows(nil)
	require.Equal(t, [][]string{{"Map", "Total_Rounds"}}, maps)
}

func TestWrite(t *testing.T) {
	fixture := tests.NewFixture(t)
	engine := metrics.NewEngine(fixture.Store)

	alpha := fixture.CreateTeam("Alpha")
	bravo := fixture.CreateTeam("Bravo, Inc")
	dust := fixture.CreateMap("Dust")
	ace := fixture.CreatePlayer(alpha.ID, "ace")
	rowA, _ := fixture.CreateMatch(dust.ID, alpha.ID, bravo.ID, 10, 3)
	fixture.CreateStat(rowA.ID, ace.ID, 5, 0, 1)

	var players bytes.Buffer
	require.NoError(t, export.Write(t.Context(), &players, engine, export.KindPlayers))
	require.Equal(t, "Player,Total_Kills,Total_Deaths,KD\nace,5,0,5.00\n", players.String())

	var teams bytes.Buffer
	require.NoError(t, export.Write(t.Context(), &teams, engine, export.KindTeams))
	require.Equal(t, "Team,Wins,Losses,WinRate_%\nAlpha,1,0,76.92\n\"Bravo, Inc\",0,1,23.08\n", teams.String())

	var maps bytes.Buffer
	require.NoError(t, export.Write(t.Context(), &maps, engine, export.KindMaps))
	require.Equal(t, "Map,Total_Rounds\nDust,26\n", maps.String())
}
