package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/session"
	"gorm.io/gorm"
)

// TeamInput is the editable part of a team. LogoSource is a path to an image to import;
// when empty the logo is left as it is (or unset on creation) unless ClearLogo is set.
type TeamInput struct {
	Name       string `json:"name"`
	Side       string `json:"side"`
	LogoSource string `json:"logo_source"`
	ClearLogo  bool   `json:"clear_logo"`
}

func (in TeamInput) clean() (string, models.Side, error) {
	name, err := models.CleanName(in.Name)
	if err != nil {
		return "", "", err
	}

	side, err := models.ParseSide(in.Side)
	if err != nil {
		return "", "", err
	}

	return name, side, nil
}

// ListTeams returns every team ordered by name, case-insensitive.
func (s *Service) ListTeams(ctx context.Context) ([]models.Team, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var teams []models.Team
	if err := byName(db).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

// GetTeam returns one team.
func (s *Service) GetTeam(ctx context.Context, teamID uint) (models.Team, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return models.Team{}, err
	}

	return findTeam(db, teamID)
}

// CreateTeam adds a team. Administrator only.
func (s *Service) CreateTeam(ctx context.Context, sess session.Session, in TeamInput) (models.Team, error) {
	if err := ownership.RequireAdmin(sess); err != nil {
		return models.Team{}, err
	}

	name, side, err := in.clean()
	if err != nil {
		return models.Team{}, err
	}

	db, err := s.store.DB(ctx)
	if err != nil {
		return models.Team{}, err
	}

	team := models.Team{
		Name: name,
		Side: side,
		Logo: optional(s.importImage(ctx, in.LogoSource)),
	}

	if err := db.Create(&team).Error; err != nil {
		return models.Team{}, fmt.Errorf("create team: %w", errs.DBErr(err))
	}

	slog.Info("Created team", slog.Uint64("team_id", uint64(team.ID)), slog.String("name", team.Name))

	return team, nil
}

// UpdateTeam renames a team or changes its side or logo.
func (s *Service) UpdateTeam(ctx context.Context, sess session.Session, teamID uint, in TeamInput) (models.Team, error) {
	name, side, err := in.clean()
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		found, errFind := findTeam(tx, teamID)
		if errFind != nil {
			return errFind
		}

		if errOwner := ownership.RequireTeam(tx, sess, teamID); errOwner != nil {
			return errOwner
		}

		team = found
		team.Name = name
		team.Side = side

		if in.ClearLogo {
			team.Logo = nil
		}

		if logo := s.importImage(ctx, in.LogoSource); logo != "" {
			team.Logo = &logo
		}

		return tx.Select("name", "side", "logo").Save(&team).Error
	})
	if err != nil {
		return models.Team{}, err
	}

	return team, nil
}

// DeleteTeam removes a team and, by cascade, its players, match rows, their player stats
// and its captain link.
func (s *Service) DeleteTeam(ctx context.Context, sess session.Session, teamID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, errFind := findTeam(tx, teamID); errFind != nil {
			return errFind
		}

		if errOwner := ownership.RequireTeam(tx, sess, teamID); errOwner != nil {
			return errOwner
		}

		return tx.Delete(&models.Team{}, teamID).Error
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted team", slog.Uint64("team_id", uint64(teamID)))

	return nil
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
