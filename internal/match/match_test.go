package match_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/match"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/session"
	"github.com/trentd187/statteam/internal/tests"
)

type league struct {
	*tests.Fixture
	recorder *match.Recorder
	dust     models.Map
	alpha    models.Team
	bravo    models.Team
	ace      models.Player
	bolt     models.Player
}

func newLeague(t *testing.T) league {
	t.Helper()

	fixture := tests.NewFixture(t)
	l := league{
		Fixture:  fixture,
		recorder: match.NewRecorder(fixture.Store),
		dust:     fixture.CreateMap("Dust"),
		alpha:    fixture.CreateTeam("Alpha"),
		bravo:    fixture.CreateTeam("Bravo"),
	}
	l.ace = fixture.CreatePlayer(l.alpha.ID, "ace")
	l.bolt = fixture.CreatePlayer(l.bravo.ID, "bolt")

	return l
}

func (l league) result(roundsA, roundsB int) match.Result {
	return match.Result{
		MapID: l.dust.ID,
		TeamA: match.Side{TeamID: l.alpha.ID, Rounds: roundsA},
		TeamB: match.Side{TeamID: l.bravo.ID, Rounds: roundsB},
	}
}

func TestRecordWritesMirroredRows(t *testing.T) {
	l := newLeague(t)

	recorded, err := l.recorder.Record(t.Context(), session.Admin(), l.result(10, 3))
	require.NoError(t, err)
	require.EqualValues(t, 2, l.Count(&models.Match{}))

	require.Equal(t, l.alpha.ID, recorded.TeamA.TeamID)
	require.Equal(t, 10, recorded.TeamA.RoundsWon)
	require.Equal(t, 3, recorded.TeamA.RoundsLost)
	require.Equal(t, l.bravo.ID, recorded.TeamB.TeamID)
	require.Equal(t, 3, recorded.TeamB.RoundsWon)
	require.Equal(t, 10, recorded.TeamB.RoundsLost)
	require.Empty(t, recorded.Stats)
}

func TestRecordRejectsShortMatch(t *testing.T) {
	l := newLeague(t)

	_, err := l.recorder.Record(t.Context(), session.Admin(), l.result(2, 1))
	require.ErrorIs(t, err, errs.ErrTooFewRounds)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Zero(t, l.Count(&models.Match{}))
}

func TestValidate(t *testing.T) {
	valid := match.Result{MapID: 1, TeamA: match.Side{TeamID: 1, Rounds: 2}, TeamB: match.Side{TeamID: 2, Rounds: 2}}
	require.NoError(t, valid.Validate())

	same := valid
	same.TeamB.TeamID = 1
	require.ErrorIs(t, same.Validate(), errs.ErrSameTeam)

	negative := valid
	negative.TeamA.Rounds = -1
	negative.TeamB.Rounds = 10
	require.ErrorIs(t, negative.Validate(), errs.ErrNegativeRounds)

	badStat := valid
	badStat.TeamA.Roster = []match.Entry{{PlayerID: 1, Played: true, Deaths: -2}}
	require.ErrorIs(t, badStat.Validate(), errs.ErrNegativeStat)
}

func TestRecordChecksReferences(t *testing.T) {
	l := newLeague(t)
	ctx := t.Context()

	missingMap := l.result(10, 3)
	missingMap.MapID = 999
	_, err := l.recorder.Record(ctx, session.Admin(), missingMap)
	require.ErrorIs(t, err, errs.ErrUnknownMap)

	missingTeam := l.result(10, 3)
	missingTeam.TeamB.TeamID = 999
	_, err = l.recorder.Record(ctx, session.Admin(), missingTeam)
	require.ErrorIs(t, err, errs.ErrUnknownTeam)

	wrongSide := l.result(10, 3)
	wrongSide.TeamA.Roster = []match.Entry{{PlayerID: l.bolt.ID, Played: true, Kills: 3}}
	_, err = l.recorder.Record(ctx, session.Admin(), wrongSide)
	require.ErrorIs(t, err, errs.ErrPlayerNotOnTeam)

	require.Zero(t, l.Count(&models.Match{}), "rejected matches leave no rows behind")
}

func TestRecordStats(t *testing.T) {
	l := newLeague(t)
	benched := l.CreatePlayer(l.alpha.ID, "bench")
	quiet := l.CreatePlayer(l.alpha.ID, "quiet")

	result := l.result(13, 11)
	result.TeamA.Roster = []match.Entry{
		{PlayerID: l.ace.ID, Played: true, Kills: 20, Deaths: 10, Bombs: 2},
		{PlayerID: benched.ID, Played: false, Kills: 4},
		{PlayerID: quiet.ID, Played: true},
	}
	result.TeamB.Roster = []match.Entry{
		{PlayerID: l.bolt.ID, Played: true, Deaths: 7},
	}

	recorded, err := l.recorder.Record(t.Context(), session.Admin(), result)
	require.NoError(t, err)
	require.Len(t, recorded.Stats, 2)

	var stats []models.PlayerStat
	require.NoError(t, l.DB().Order("id").Find(&stats).Error)
	require.Len(t, stats, 2)
	require.Equal(t, l.ace.ID, stats[0].PlayerID)
	require.Equal(t, recorded.TeamA.ID, stats[0].MatchID)
	require.Equal(t, 20, stats[0].Kills)
	require.Equal(t, l.bolt.ID, stats[1].PlayerID)
	require.Equal(t, recorded.TeamB.ID, stats[1].MatchID)
}

func TestRecordRollsBackOnFailure(t *testing.T) {
	l := newLeague(t)

	// The stats insert fails after both match rows were written.
	result := l.result(10, 3)
	result.TeamA.Roster = []match.Entry{{PlayerID: l.ace.ID, Played: true, Kills: 1}}
	require.NoError(t, l.DB().Exec("DROP TABLE playerstats").Error)

	_, err := l.recorder.Record(t.Context(), session.Admin(), result)
	require.Error(t, err)
	require.Zero(t, l.Count(&models.Match{}))
}

func TestRecordPermissions(t *testing.T) {
	l := newLeague(t)
	ctx := t.Context()

	charlie := l.CreateTeam("Charlie")
	l.CreateCaptain("cap", "pw")
	l.Own(l.bravo.ID, "cap")

	_, err := l.recorder.Record(ctx, session.Visitor(), l.result(10, 3))
	require.ErrorIs(t, err, errs.ErrVisitorReadOnly)

	_, err = l.recorder.Record(ctx, session.ForCaptain("cap"), l.result(10, 3))
	require.NoError(t, err, "captain of team B may record")

	other := l.result(10, 3)
	other.TeamB.TeamID = charlie.ID
	_, err = l.recorder.Record(ctx, session.ForCaptain("cap"), other)
	require.ErrorIs(t, err, errs.ErrNotOwner)

	require.EqualValues(t, 2, l.Count(&models.Match{}))
}

func TestRecordedRowsAlwaysMirror(t *testing.T) {
	l := newLeague(t)
	ctx := t.Context()

	property := func(a, b uint8) bool {
		roundsA, roundsB := int(a%40), int(b%40)

		recorded, err := l.recorder.Record(ctx, session.Admin(), l.result(roundsA, roundsB))
		if roundsA+roundsB < models.MinRoundsPerMatch {
			return err != nil && recorded.TeamA.ID == 0
		}

		if err != nil {
			return false
		}

		var rows []models.Match
		if errFind := l.DB().Where("id IN ?", []uint{recorded.TeamA.ID, recorded.TeamB.ID}).Order("id").Find(&rows).Error; errFind != nil {
			return false
		}

		return len(rows) == 2 &&
			rows[0].RoundsWon == rows[1].RoundsLost &&
			rows[0].RoundsLost == rows[1].RoundsWon &&
			rows[0].RoundsWon == roundsA &&
			rows[0].MapID == rows[1].MapID
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 50}))

	var won, lost int64
	require.NoError(t, l.DB().Model(&models.Match{}).Select("COALESCE(SUM(rounds_won), 0)").Scan(&won).Error)
	require.NoError(t, l.DB().Model(&models.Match{}).Select("COALESCE(SUM(rounds_lost), 0)").Scan(&lost).Error)
	require.Equal(t, won, lost)
}

func TestHistoryNewestFirst(t *testing.T) {
	l := newLeague(t)
	nuke := l.CreateMap("Nuke")

	_, err := l.recorder.Record(t.Context(), session.Admin(), l.result(10, 3))
	require.NoError(t, err)

	second := l.result(2, 13)
	second.MapID = nuke.ID
	_, err = l.recorder.Record(t.Context(), session.Admin(), second)
	require.NoError(t, err)

	history, err := l.recorder.History(t.Context(), l.alpha.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "Nuke", history[0].MapName)
	require.False(t, history[0].Won)
	require.Equal(t, "Dust", history[1].MapName)
	require.True(t, history[1].Won)

	_, err = l.recorder.History(t.Context(), 999)
	require.ErrorIs(t, err, errs.ErrTeamNotFound)
}
