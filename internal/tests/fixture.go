// Package tests holds fixtures shared by the package tests.
package tests

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/models"
	"gorm.io/gorm"
)

// Fixture is an empty store in a temp dir plus helpers that insert rows directly,
// bypassing permission checks.
type Fixture struct {
	Store *database.Store
	Dir   string
	t     *testing.T
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	dir := t.TempDir()
	store, err := database.Open(t.Context(), filepath.Join(dir, "last_db.txt"), filepath.Join(dir, "statteam.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &Fixture{Store: store, Dir: dir, t: t}
}

func (f *Fixture) DB() *gorm.DB {
	db, err := f.Store.DB(f.t.Context())
	require.NoError(f.t, err)

	return db
}

func (f *Fixture) CreateTeam(name string) models.Team {
	team := models.Team{Name: name, Side: models.SideMine}
	require.NoError(f.t, f.DB().Create(&team).Error)

	return team
}

func (f *Fixture) CreatePlayer(teamID uint, name string) models.Player {
	player := models.Player{TeamID: teamID, Name: name}
	require.NoError(f.t, f.DB().Create(&player).Error)

	return player
}

func (f *Fixture) CreateMap(name string) models.Map {
	m := models.Map{Name: name}
	require.NoError(f.t, f.DB().Create(&m).Error)

	return m
}

func (f *Fixture) CreateCaptain(username, password string) models.Captain {
	captain := models.Captain{Username: username, Password: password}
	require.NoError(f.t, f.DB().Create(&captain).Error)

	return captain
}

func (f *Fixture) Own(teamID uint, captain string) {
	require.NoError(f.t, f.DB().Create(&models.TeamOwnership{TeamID: teamID, Captain: captain}).Error)
}

// CreateMatch inserts both sides of an encounter.
func (f *Fixture) CreateMatch(mapID, teamA, teamB uint, roundsA, roundsB int) (models.Match, models.Match) {
	sideA := models.Match{TeamID: teamA, MapID: mapID, RoundsWon: roundsA, RoundsLost: roundsB}
	sideB := models.Match{TeamID: teamB, MapID: mapID, RoundsWon: roundsB, RoundsLost: roundsA}
	require.NoError(f.t, f.DB().Create(&sideA).Error)
	require.NoError(f.t, f.DB().Create(&sideB).Error)

	return sideA, sideB
}

func (f *Fixture) CreateStat(matchID, playerID uint, kills, deaths, bombs int) {
	stat := models.PlayerStat{MatchID: matchID, PlayerID: playerID, Kills: kills, Deaths: deaths, Bombs: bombs}
	require.NoError(f.t, f.DB().Create(&stat).Error)
}

// Count returns the number of rows of model's table.
func (f *Fixture) Count(model any) int64 {
	var count int64
	require.NoError(f.t, f.DB().Model(model).Count(&count).Error)

	return count
}
