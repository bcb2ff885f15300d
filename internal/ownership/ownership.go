// Package ownership decides whether a session may change a team or one of its players,
// and manages the captain-to-team links that decision is based on.
package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/session"
	"gorm.io/gorm"
)

// CanMutate is the single capability check, evaluated in order:
//  1. administrators may change anything
//  2. captains may change only the team a TeamOwnership row links them to
//  3. visitors (and logged-out sessions) may change nothing
//
// The ownership row is looked up on every call. db may be a transaction.
func CanMutate(db *gorm.DB, sess session.Session, teamID uint) (bool, error) {
	switch {
	case sess.IsAdmin():
		return true, nil
	case sess.IsCaptain():
		var count int64
		if err := db.Model(&models.TeamOwnership{}).
			Where("team_id = ? AND captain = ?", teamID, sess.Captain).
			Count(&count).Error; err != nil {
			return false, fmt.Errorf("lookup ownership: %w", err)
		}

		return count > 0, nil
	default:
		return false, nil
	}
}

// RequireTeam is CanMutate turned into an error for callers that only need a yes or no.
func RequireTeam(db *gorm.DB, sess session.Session, teamID uint) error {
	if !sess.IsAdmin() && !sess.IsCaptain() {
		return errs.ErrVisitorReadOnly
	}

	allowed, err := CanMutate(db, sess, teamID)
	if err != nil {
		return err
	}

	if !allowed {
		return errs.ErrNotOwner
	}

	return nil
}

// RequirePlayer loads the player and checks the session may change the player's team.
func RequirePlayer(db *gorm.DB, sess session.Session, playerID uint) (models.Player, error) {
	if !sess.IsAdmin() && !sess.IsCaptain() {
		return models.Player{}, errs.ErrVisitorReadOnly
	}

	var player models.Player
	if err := db.First(&player, playerID).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
			return models.Player{}, errs.ErrPlayerNotFound
		}

		return models.Player{}, fmt.Errorf("find player: %w", err)
	}

	if err := RequireTeam(db, sess, player.TeamID); err != nil {
		return models.Player{}, err
	}

	return player, nil
}

// RequireAdmin rejects every non-administrator session.
func RequireAdmin(sess session.Session) error {
	if !sess.IsAdmin() {
		return errs.ErrAdminOnly
	}

	return nil
}

// Authority wraps the checks above with the store and owns captain assignment.
type Authority struct {
	store *database.Store
}

func NewAuthority(store *database.Store) *Authority {
	return &Authority{store: store}
}

// CanMutateTeam reports whether sess may change the team.
func (a *Authority) CanMutateTeam(ctx context.Context, sess session.Session, teamID uint) (bool, error) {
	db, err := a.store.DB(ctx)
	if err != nil {
		return false, err
	}

	return CanMutate(db, sess, teamID)
}

// AssignCaptain links captain to the team. Administrator only.
//
// The captain must not already own a different team. When the team already has a different
// captain the call is rejected unless replace is set, in which case that captain is unlinked
// first. Both checks and the write happen in one transaction.
func (a *Authority) AssignCaptain(ctx context.Context, sess session.Session, teamID uint, captain string, replace bool) (models.TeamOwnership, error) {
	if err := RequireAdmin(sess); err != nil {
		return models.TeamOwnership{}, err
	}

	link := models.TeamOwnership{TeamID: teamID, Captain: captain}

	err := a.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := exists(tx, &models.Team{}, "id = ?", teamID, errs.ErrTeamNotFound); err != nil {
			return err
		}

		if err := exists(tx, &models.Captain{}, "username = ?", captain, errs.ErrNoCaptain); err != nil {
			return err
		}

		var current []models.TeamOwnership
		if err := tx.Where("team_id = ? OR captain = ?", teamID, captain).Find(&current).Error; err != nil {
			return fmt.Errorf("lookup ownership: %w", err)
		}

		for _, row := range current {
			switch {
			case row.TeamID == teamID && row.Captain == captain:
				return errAlreadyLinked
			case row.Captain == captain:
				return errs.ErrCaptainHasTeam
			case !replace:
				return errs.ErrTeamHasCaptain
			}
		}

		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamOwnership{}).Error; err != nil {
			return fmt.Errorf("unlink previous captain: %w", err)
		}

		if err := tx.Create(&link).Error; err != nil {
			if errors.Is(errs.DBErr(err), errs.ErrDuplicate) {
				return errs.ErrCaptainHasTeam
			}

			return fmt.Errorf("link captain: %w", err)
		}

		return nil
	})

	if errors.Is(err, errAlreadyLinked) {
		return link, nil
	}

	if err != nil {
		return models.TeamOwnership{}, err
	}

	slog.Info("Assigned captain", slog.Uint64("team_id", uint64(teamID)), slog.String("captain", captain))

	return link, nil
}

// errAlreadyLinked ends the assignment transaction early when there is nothing to do.
var errAlreadyLinked = errors.New("already linked")

// UnassignCaptain removes the team's captain link, if any. Administrator only.
func (a *Authority) UnassignCaptain(ctx context.Context, sess session.Session, teamID uint) error {
	if err := RequireAdmin(sess); err != nil {
		return err
	}

	db, err := a.store.DB(ctx)
	if err != nil {
		return err
	}

	if err := db.Where("team_id = ?", teamID).Delete(&models.TeamOwnership{}).Error; err != nil {
		return fmt.Errorf("unlink captain: %w", err)
	}

	return nil
}

// TeamCaptain returns the username linked to the team, or "" when it has none.
func (a *Authority) TeamCaptain(ctx context.Context, teamID uint) (string, error) {
	db, err := a.store.DB(ctx)
	if err != nil {
		return "", err
	}

	var rows []models.TeamOwnership
	if err := db.Where("team_id = ?", teamID).Limit(1).Find(&rows).Error; err != nil {
		return "", fmt.Errorf("lookup ownership: %w", err)
	}

	if len(rows) == 0 {
		return "", nil
	}

	return rows[0].Captain, nil
}

// OwnedTeam returns the team a captain session may edit.
func (a *Authority) OwnedTeam(ctx context.Context, sess session.Session) (models.Team, error) {
	if !sess.IsCaptain() {
		return models.Team{}, errs.ErrNoOwnedTeam
	}

	db, err := a.store.DB(ctx)
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team
	if err := db.Joins("JOIN teamowners ON teamowners.team_id = teams.id").
		Where("teamowners.captain = ?", sess.Captain).
		First(&team).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrNotFound) {
			return models.Team{}, errs.ErrNoOwnedTeam
		}

		return models.Team{}, fmt.Errorf("find owned team: %w", err)
	}

	return team, nil
}

func exists(db *gorm.DB, model any, query string, arg any, missing error) error {
	var count int64
	if err := db.Model(model).Where(query, arg).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if count == 0 {
		return missing
	}

	return nil
}
