package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/session"
	"gorm.io/gorm"
)

// PlayerInput is the editable part of a player. Players never change team.
type PlayerInput struct {
	Name           string `json:"name"`
	PortraitSource string `json:"portrait_source"`
	ClearPortrait  bool   `json:"clear_portrait"`
}

// ListPlayers returns a team's roster ordered by name, case-insensitive.
func (s *Service) ListPlayers(ctx context.Context, teamID uint) ([]models.Player, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := findTeam(db, teamID); err != nil {
		return nil, err
	}

	var players []models.Player
	if err := byName(db.Where("team_id = ?", teamID)).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

// CreatePlayer adds a player to a team. Non-administrators cannot grow a roster past
// models.MaxPlayersPerTeam.
func (s *Service) CreatePlayer(ctx context.Context, sess session.Session, teamID uint, in PlayerInput) (models.Player, error) {
	name, err := models.CleanName(in.Name)
	if err != nil {
		return models.Player{}, err
	}

	var player models.Player

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, errFind := findTeam(tx, teamID); errFind != nil {
			return errFind
		}

		if errOwner := ownership.RequireTeam(tx, sess, teamID); errOwner != nil {
			return errOwner
		}

		if !sess.IsAdmin() {
			var count int64
			if errCount := tx.Model(&models.Player{}).Where("team_id = ?", teamID).Count(&count).Error; errCount != nil {
				return fmt.Errorf("count players: %w", errCount)
			}

			if count >= models.MaxPlayersPerTeam {
				return errs.ErrRosterFull
			}
		}

		player = models.Player{
			TeamID: teamID,
			Name:   name,
			Logo:   optional(s.importImage(ctx, in.PortraitSource)),
		}

		return tx.Create(&player).Error
	})
	if err != nil {
		return models.Player{}, err
	}

	slog.Info("Created player", slog.Uint64("player_id", uint64(player.ID)), slog.Uint64("team_id", uint64(teamID)))

	return player, nil
}

// UpdatePlayer renames a player or changes their portrait.
func (s *Service) UpdatePlayer(ctx context.Context, sess session.Session, playerID uint, in PlayerInput) (models.Player, error) {
	name, err := models.CleanName(in.Name)
	if err != nil {
		return models.Player{}, err
	}

	var player models.Player

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		found, errOwner := ownership.RequirePlayer(tx, sess, playerID)
		if errOwner != nil {
			return errOwner
		}

		player = found
		player.Name = name

		if in.ClearPortrait {
			player.Logo = nil
		}

		if logo := s.importImage(ctx, in.PortraitSource); logo != "" {
			player.Logo = &logo
		}

		return tx.Select("name", "logo").Save(&player).Error
	})
	if err != nil {
		return models.Player{}, err
	}

	return player, nil
}

// DeletePlayer removes a player and, by cascade, their stats.
func (s *Service) DeletePlayer(ctx context.Context, sess session.Session, playerID uint) error {
	return s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := ownership.RequirePlayer(tx, sess, playerID); err != nil {
			return err
		}

		return tx.Delete(&models.Player{}, playerID).Error
	})
}
