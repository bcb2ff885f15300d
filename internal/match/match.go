// Package match records encounters between two teams on one map.
//
// A Result is the logical match. Record expands it into the two persisted Match rows, one per
// side with won and lost mirrored, plus a PlayerStat row for every player who played and has at
// least one non-zero number. Everything is written in one transaction.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/session"
	"gorm.io/gorm"
)

// Entry is one roster slot on the match sheet.
type Entry struct {
	PlayerID uint `json:"player_id"`
	Played   bool `json:"played"`
	Kills    int  `json:"kills"`
	Deaths   int  `json:"deaths"`
	Bombs    int  `json:"bombs"`
}

func (e Entry) hasStats() bool {
	return e.Kills != 0 || e.Deaths != 0 || e.Bombs != 0
}

// Side is one team's half of a match: the rounds it won and its roster sheet.
type Side struct {
	TeamID uint    `json:"team_id"`
	Rounds int     `json:"rounds"`
	Roster []Entry `json:"roster"`
}

// Result is a logical match between TeamA and TeamB.
type Result struct {
	MapID uint `json:"map_id"`
	TeamA Side `json:"team_a"`
	TeamB Side `json:"team_b"`
}

// Validate checks everything that does not need the store.
func (r Result) Validate() error {
	if r.TeamA.TeamID == r.TeamB.TeamID {
		return errs.ErrSameTeam
	}

	if r.TeamA.Rounds < 0 || r.TeamB.Rounds < 0 {
		return errs.ErrNegativeRounds
	}

	if r.TeamA.Rounds+r.TeamB.Rounds < models.MinRoundsPerMatch {
		return fmt.Errorf("%w: %d rounds, need at least %d",
			errs.ErrTooFewRounds, r.TeamA.Rounds+r.TeamB.Rounds, models.MinRoundsPerMatch)
	}

	for _, side := range []Side{r.TeamA, r.TeamB} {
		for _, entry := range side.Roster {
			if entry.Kills < 0 || entry.Deaths < 0 || entry.Bombs < 0 {
				return errs.ErrNegativeStat
			}
		}
	}

	return nil
}

// Recorded is what Record wrote.
type Recorded struct {
	TeamA models.Match        `json:"team_a"`
	TeamB models.Match        `json:"team_b"`
	Stats []models.PlayerStat `json:"stats"`
}

type Recorder struct {
	store *database.Store
}

func NewRecorder(store *database.Store) *Recorder {
	return &Recorder{store: store}
}

// Record validates result and commits it. Administrators may record any match; a captain
// only one their own team took part in. Nothing is written unless every step succeeds.
func (r *Recorder) Record(ctx context.Context, sess session.Session, result Result) (Recorded, error) {
	if !sess.IsAdmin() && !sess.IsCaptain() {
		return Recorded{}, errs.ErrVisitorReadOnly
	}

	if err := result.Validate(); err != nil {
		return Recorded{}, err
	}

	var recorded Recorded

	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkReferences(tx, result); err != nil {
			return err
		}

		if err := checkParticipant(tx, sess, result); err != nil {
			return err
		}

		recorded.TeamA = models.Match{
			TeamID:     result.TeamA.TeamID,
			MapID:      result.MapID,
			RoundsWon:  result.TeamA.Rounds,
			RoundsLost: result.TeamB.Rounds,
		}
		if err := tx.Create(&recorded.TeamA).Error; err != nil {
			return fmt.Errorf("insert team A row: %w", err)
		}

		recorded.TeamB = models.Match{
			TeamID:     result.TeamB.TeamID,
			MapID:      result.MapID,
			RoundsWon:  result.TeamB.Rounds,
			RoundsLost: result.TeamA.Rounds,
		}
		if err := tx.Create(&recorded.TeamB).Error; err != nil {
			return fmt.Errorf("insert team B row: %w", err)
		}

		recorded.Stats = append(statRows(recorded.TeamA.ID, result.TeamA.Roster), statRows(recorded.TeamB.ID, result.TeamB.Roster)...)
		if len(recorded.Stats) == 0 {
			return nil
		}

		if err := tx.Create(&recorded.Stats).Error; err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}

		return nil
	})
	if err != nil {
		return Recorded{}, err
	}

	slog.Info("Recorded match",
		slog.Uint64("map_id", uint64(result.MapID)),
		slog.Uint64("team_a", uint64(result.TeamA.TeamID)),
		slog.Uint64("team_b", uint64(result.TeamB.TeamID)),
		slog.Int("rounds_a", result.TeamA.Rounds),
		slog.Int("rounds_b", result.TeamB.Rounds),
		slog.Bool("team_a_won", recorded.TeamA.Won()),
		slog.Bool("team_b_won", recorded.TeamB.Won()),
		slog.Int("stats", len(recorded.Stats)))

	return recorded, nil
}

func statRows(matchID uint, roster []Entry) []models.PlayerStat {
	var rows []models.PlayerStat

	for _, entry := range roster {
		if !entry.Played || !entry.hasStats() {
			continue
		}

		rows = append(rows, models.PlayerStat{
			MatchID:  matchID,
			PlayerID: entry.PlayerID,
			Kills:    entry.Kills,
			Deaths:   entry.Deaths,
			Bombs:    entry.Bombs,
		})
	}

	return rows
}

// checkReferences makes sure the map and both teams exist and every played roster entry
// belongs to the side it is listed under.
func checkReferences(tx *gorm.DB, result Result) error {
	if err := tx.First(&models.Map{}, result.MapID).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
			return errs.ErrUnknownMap
		}

		return fmt.Errorf("find map: %w", err)
	}

	for _, side := range []Side{result.TeamA, result.TeamB} {
		if err := tx.First(&models.Team{}, side.TeamID).Error; err != nil {
			if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
				return fmt.Errorf("%w: %d", errs.ErrUnknownTeam, side.TeamID)
			}

			return fmt.Errorf("find team: %w", err)
		}

		var playerIDs []uint

		for _, entry := range side.Roster {
			if entry.Played && entry.hasStats() {
				playerIDs = append(playerIDs, entry.PlayerID)
			}
		}

		if len(playerIDs) == 0 {
			continue
		}

		var onTeam []uint
		if err := tx.Model(&models.Player{}).
			Where("team_id = ? AND id IN ?", side.TeamID, playerIDs).
			Pluck("id", &onTeam).Error; err != nil {
			return fmt.Errorf("check roster: %w", err)
		}

		known := make(map[uint]bool, len(onTeam))
		for _, id := range onTeam {
			known[id] = true
		}

		for _, id := range playerIDs {
			if !known[id] {
				return fmt.Errorf("%w: player %d, team %d", errs.ErrPlayerNotOnTeam, id, side.TeamID)
			}
		}
	}

	return nil
}

func checkParticipant(tx *gorm.DB, sess session.Session, result Result) error {
	if sess.IsAdmin() {
		return nil
	}

	for _, teamID := range []uint{result.TeamA.TeamID, result.TeamB.TeamID} {
		allowed, err := ownership.CanMutate(tx, sess, teamID)
		if err != nil {
			return err
		}

		if allowed {
			return nil
		}
	}

	return errs.ErrNotOwner
}
