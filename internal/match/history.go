package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
)

// HistoryEntry is one of a team's Match rows with its map name resolved.
type HistoryEntry struct {
	MatchID    uint   `json:"match_id"`
	MapID      uint   `json:"map_id"`
	MapName    string `json:"map_name"`
	RoundsWon  int    `json:"rounds_won"`
	RoundsLost int    `json:"rounds_lost"`
	Won        bool   `json:"won"`
}

// History lists the team's match rows, newest first.
func (r *Recorder) History(ctx context.Context, teamID uint) ([]HistoryEntry, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	if err := db.First(&models.Team{}, teamID).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
			return nil, errs.ErrTeamNotFound
		}

		return nil, fmt.Errorf("find team: %w", err)
	}

	var history []HistoryEntry
	if err := db.Model(&models.Match{}).
		Select("matches.id AS match_id, matches.map_id, maps.name AS map_name, matches.rounds_won, matches.rounds_lost, "+
			"matches.rounds_won > matches.rounds_lost AS won").
		Joins("JOIN maps ON maps.id = matches.map_id").
		Where("matches.team_id = ?", teamID).
		Order("matches.id DESC").
		Scan(&history).Error; err != nil {
		return nil, fmt.Errorf("match history: %w", err)
	}

	return history, nil
}
