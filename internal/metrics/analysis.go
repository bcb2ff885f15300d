package metrics

import (
	"context"
	"fmt"

	"github.com/trentd187/statteam/internal/models"
)

// MapRate is a team's record on one map.
type MapRate struct {
	MapID      uint    `json:"map_id"`
	Name       string  `json:"name"`
	RoundsWon  int     `json:"rounds_won"`
	RoundsLost int     `json:"rounds_lost"`
	WinRate    float64 `json:"win_rate" gorm:"-"`
}

// Analysis is the per-team breakdown shown on a team's page.
type Analysis struct {
	Team    models.Team    `json:"team"`
	Overall TeamTotals     `json:"overall"`
	Maps    []MapRate      `json:"maps"`
	Players []PlayerTotals `json:"players"`
}

// TeamAnalysis returns the team's overall record, its win rate on every map it played and
// every player's KD.
func (e *Engine) TeamAnalysis(ctx context.Context, teamID uint) (Analysis, error) {
	db, err := e.store.DB(ctx)
	if err != nil {
		return Analysis{}, err
	}

	team, err := findTeam(db, teamID)
	if err != nil {
		return Analysis{}, err
	}

	overall, err := e.TeamWinRate(ctx, teamID, nil)
	if err != nil {
		return Analysis{}, err
	}

	var maps []MapRate
	if err := db.Model(&models.Match{}).
		Select("maps.id AS map_id, maps.name, SUM(matches.rounds_won) AS rounds_won, SUM(matches.rounds_lost) AS rounds_lost").
		Joins("JOIN maps ON maps.id = matches.map_id").
		Where("matches.team_id = ?", teamID).
		Group("maps.id, maps.name").
		Order("LOWER(maps.name)").
		Scan(&maps).Error; err != nil {
		return Analysis{}, fmt.Errorf("map rates: %w", err)
	}

	for i := range maps {
		maps[i].WinRate = WinRate(maps[i].RoundsWon, maps[i].RoundsLost)
	}

	var players []PlayerTotals
	if err := playerTotals(db).
		Where("players.team_id = ?", teamID).
		Order("LOWER(players.name)").
		Scan(&players).Error; err != nil {
		return Analysis{}, fmt.Errorf("player totals: %w", err)
	}

	return Analysis{
		Team:    team,
		Overall: overall,
		Maps:    maps,
		Players: withKD(players),
	}, nil
}
