package roster

import (
	"context"
	"fmt"

	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/session"
)

// CaptainInfo is a captain account as administrators see it. Passwords are never returned.
type CaptainInfo struct {
	Username string `json:"username"`
	TeamID   *uint  `json:"team_id"`
}

// ListCaptains returns every captain with the team they own, if any. Administrator only.
func (s *Service) ListCaptains(ctx context.Context, sess session.Session) ([]CaptainInfo, error) {
	if err := ownership.RequireAdmin(sess); err != nil {
		return nil, err
	}

	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var captains []CaptainInfo
	if err := db.Model(&models.Captain{}).
		Select("captains.username AS username, teamowners.team_id AS team_id").
		Joins("LEFT JOIN teamowners ON teamowners.captain = captains.username").
		Order("captains.username").
		Scan(&captains).Error; err != nil {
		return nil, fmt.Errorf("list captains: %w", err)
	}

	return captains, nil
}

// DeleteCaptain removes an account and, by cascade, its team link. Administrator only.
func (s *Service) DeleteCaptain(ctx context.Context, sess session.Session, username string) error {
	if err := ownership.RequireAdmin(sess); err != nil {
		return err
	}

	db, err := s.store.DB(ctx)
	if err != nil {
		return err
	}

	result := db.Where("username = ?", username).Delete(&models.Captain{})
	if result.Error != nil {
		return fmt.Errorf("delete captain: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.ErrNoCaptain
	}

	return nil
}
