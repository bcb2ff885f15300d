package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
)

func TestCleanName(t *testing.T) {
	name, err := models.CleanName("  Alpha  ")
	require.NoError(t, err)
	require.Equal(t, "Alpha", name)

	_, err = models.CleanName("   ")
	require.ErrorIs(t, err, errs.ErrNameRequired)

	_, err = models.CleanName(strings.Repeat("x", models.MaxNameLength+1))
	require.ErrorIs(t, err, errs.ErrNameTooLong)

	// 35 multi-byte characters are still within the limit.
	name, err = models.CleanName(strings.Repeat("é", models.MaxNameLength))
	require.NoError(t, err)
	require.Equal(t, models.MaxNameLength, len([]rune(name)))
}

func TestParseSide(t *testing.T) {
	side, err := models.ParseSide("")
	require.NoError(t, err)
	require.Equal(t, models.SideMine, side)

	side, err = models.ParseSide("OPP")
	require.NoError(t, err)
	require.Equal(t, models.SideOpponent, side)

	_, err = models.ParseSide("neutral")
	require.ErrorIs(t, err, errs.ErrInvalidSide)
}

func TestRoleValid(t *testing.T) {
	require.True(t, models.RoleAdmin.Valid())
	require.True(t, models.RoleCaptain.Valid())
	require.True(t, models.RoleVisitor.Valid())
	require.False(t, models.Role("owner").Valid())
}

func TestMatchWon(t *testing.T) {
	require.True(t, models.Match{RoundsWon: 7, RoundsLost: 5}.Won())
	require.False(t, models.Match{RoundsWon: 5, RoundsLost: 5}.Won())
}
