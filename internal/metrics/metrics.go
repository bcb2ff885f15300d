// Package metrics derives figures from recorded matches. Nothing here writes to the store and
// nothing it computes is ever stored: every call reads the current rows.
package metrics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// KD is kills divided by deaths. With no deaths it is the kill count, so 0/0 is 0.
func KD(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}

	return float64(kills) / float64(deaths)
}

// WinRate is the percentage of rounds won. With no rounds played it is 0.
func WinRate(won, lost int) float64 {
	if won+lost == 0 {
		return 0
	}

	return float64(won) / float64(won+lost) * 100
}

type Engine struct {
	store *database.Store
}

func NewEngine(store *database.Store) *Engine {
	return &Engine{store: store}
}

// PlayerTotals is a player's stats summed over every match.
type PlayerTotals struct {
	PlayerID uint    `json:"player_id"`
	TeamID   uint    `json:"team_id"`
	Name     string  `json:"name"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Bombs    int     `json:"bombs"`
	KD       float64 `json:"kd" gorm:"-"`
}

// TeamTotals is a team's rounds summed over its match rows. Wins and Losses count match
// rows; a draw is neither.
type TeamTotals struct {
	TeamID     uint    `json:"team_id"`
	Name       string  `json:"name"`
	RoundsWon  int     `json:"rounds_won"`
	RoundsLost int     `json:"rounds_lost"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate" gorm:"-"`
}

// MapTotals is the number of rounds played on a map, counted once per team side.
type MapTotals struct {
	MapID  uint   `json:"map_id"`
	Name   string `json:"name"`
	Rounds int    `json:"rounds"`
}

const playerTotalsSelect = "players.id AS player_id, players.team_id, players.name, " +
	"COALESCE(SUM(playerstats.kills), 0) AS kills, " +
	"COALESCE(SUM(playerstats.deaths), 0) AS deaths, " +
	"COALESCE(SUM(playerstats.bombs), 0) AS bombs"

const teamTotalsSelect = "teams.id AS team_id, teams.name, " +
	"COALESCE(SUM(matches.rounds_won), 0) AS rounds_won, " +
	"COALESCE(SUM(matches.rounds_lost), 0) AS rounds_lost, " +
	"COALESCE(SUM(CASE WHEN matches.rounds_won > matches.rounds_lost THEN 1 ELSE 0 END), 0) AS wins, " +
	"COALESCE(SUM(CASE WHEN matches.rounds_lost > matches.rounds_won THEN 1 ELSE 0 END), 0) AS losses"

func playerTotals(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Player{}).
		Select(playerTotalsSelect).
		Joins("LEFT JOIN playerstats ON playerstats.player_id = players.id").
		Group("players.id, players.team_id, players.name")
}

func teamTotals(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Team{}).
		Select(teamTotalsSelect).
		Joins("LEFT JOIN matches ON matches.team_id = teams.id").
		Group("teams.id, teams.name")
}

func withKD(totals []PlayerTotals) []PlayerTotals {
	for i := range totals {
		totals[i].KD = KD(totals[i].Kills, totals[i].Deaths)
	}

	return totals
}

func withWinRate(totals []TeamTotals) []TeamTotals {
	for i := range totals {
		totals[i].WinRate = WinRate(totals[i].RoundsWon, totals[i].RoundsLost)
	}

	return totals
}

// PlayerKD returns one player's totals and KD.
func (e *Engine) PlayerKD(ctx context.Context, playerID uint) (PlayerTotals, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return PlayerTotals{}, err
	}

	var totals []PlayerTotals
	if err := playerTotals(db).Where("players.id = ?", playerID).Scan(&totals).Error; err != nil {
		return PlayerTotals{}, fmt.Errorf("player totals: %w", err)
	}

	if len(totals) == 0 {
		return PlayerTotals{}, errs.ErrPlayerNotFound
	}

	return withKD(totals)[0], nil
}

// TeamWinRate returns the team's totals across every map, or only mapID when it is non-nil.
func (e *Engine) TeamWinRate(ctx context.Context, teamID uint, mapID *uint) (TeamTotals, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return TeamTotals{}, err
	}

	query := db.Model(&models.Team{}).
		Select(teamTotalsSelect).
		Where("teams.id = ?", teamID).
		Group("teams.id, teams.name")

	if mapID != nil {
		query = query.Joins("LEFT JOIN matches ON matches.team_id = teams.id AND matches.map_id = ?", *mapID)
	} else {
		query = query.Joins("LEFT JOIN matches ON matches.team_id = teams.id")
	}

	var totals []TeamTotals
	if err := query.Scan(&totals).Error; err != nil {
		return TeamTotals{}, fmt.Errorf("team totals: %w", err)
	}

	if len(totals) == 0 {
		return TeamTotals{}, errs.ErrTeamNotFound
	}

	return withWinRate(totals)[0], nil
}

// TeamWins counts the team's match rows where it won more rounds than it lost.
func (e *Engine) TeamWins(ctx context.Context, teamID uint) (int, error) {
	totals, err := e.TeamWinRate(ctx, teamID, nil)
	if err != nil {
		return 0, err
	}

	return totals.Wins, nil
}

// Standing is one leaderboard line.
type Standing struct {
	Rank   int    `json:"rank"`
	TeamID uint   `json:"team_id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
}

// Leaderboard ranks every team by wins, most first. Equal wins are ordered by name,
// ignoring case.
func (e *Engine) Leaderboard(ctx context.Context) ([]Standing, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var totals []TeamTotals
	if err := teamTotals(db).Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	fold := cases.Fold()
	slices.SortFunc(totals, func(a, b TeamTotals) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(fold.String(a.Name), fold.String(b.Name)),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.TeamID, b.TeamID),
		)
	})

	standings := make([]Standing, len(totals))
	for i, team := range totals {
		standings[i] = Standing{Rank: i + 1, TeamID: team.TeamID, Name: team.Name, Wins: team.Wins}
	}

	return standings, nil
}

// BestPlayers lists every player by KD, highest first. Ties keep query order.
func (e *Engine) BestPlayers(ctx context.Context) ([]PlayerTotals, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var totals []PlayerTotals
	if err := playerTotals(db).Order("players.id").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("best players: %w", err)
	}

	totals = withKD(totals)
	slices.SortStableFunc(totals, func(a, b PlayerTotals) int {
		return cmp.Compare(b.KD, a.KD)
	})

	return totals, nil
}

// BestTeams lists every team by win rate, highest first. Ties keep query order.
func (e *Engine) BestTeams(ctx context.Context) ([]TeamTotals, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var totals []TeamTotals
	if err := teamTotals(db).Order("teams.id").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("best teams: %w", err)
	}

	totals = withWinRate(totals)
	slices.SortStableFunc(totals, func(a, b TeamTotals) int {
		return cmp.Compare(b.WinRate, a.WinRate)
	})

	return totals, nil
}

// MostPlayedMaps lists every map by rounds played, most first. Ties keep query order.
func (e *Engine) MostPlayedMaps(ctx context.Context) ([]MapTotals, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var totals []MapTotals
	if err := db.Model(&models.Map{}).
		Select("maps.id AS map_id, maps.name, COALESCE(SUM(matches.rounds_won + matches.rounds_lost), 0) AS rounds").
		Joins("LEFT JOIN matches ON matches.map_id = maps.id").
		Group("maps.id, maps.name").
		Order("maps.id").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("most played maps: %w", err)
	}

	slices.SortStableFunc(totals, func(a, b MapTotals) int {
		return cmp.Compare(b.Rounds, a.Rounds)
	})

	return totals, nil
}

func findTeam(db *gorm.DB, teamID uint) (models.Team, error) {
	var team models.Team
	if err := db.First(&team, teamID).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
			return models.Team{}, errs.ErrTeamNotFound
		}

		return models.Team{}, fmt.Errorf("find team: %w", err)
	}

	return team, nil
}
