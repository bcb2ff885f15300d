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
)

type MapInput struct {
	Name        string `json:"name"`
	ImageSource string `json:"image_source"`
}

// ListMaps returns every map ordered by name, case-insensitive.
func (s *Service) ListMaps(ctx context.Context) ([]models.Map, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var maps []models.Map
	if err := byName(db).Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}

	return maps, nil
}

// CreateMap adds a map. Names are unique and compared case-sensitively; a duplicate is an
// integrity conflict and nothing is inserted.
func (s *Service) CreateMap(ctx context.Context, sess session.Session, in MapInput) (models.Map, error) {
	if !sess.IsAdmin() && !sess.IsCaptain() {
		return models.Map{}, errs.ErrVisitorReadOnly
	}

	name, err := models.CleanName(in.Name)
	if err != nil {
		return models.Map{}, err
	}

	db, err := s.store.DB(ctx)
	if err != nil {
		return models.Map{}, err
	}

	var taken int64
	if err := db.Model(&models.Map{}).Where("name = ?", name).Count(&taken).Error; err != nil {
		return models.Map{}, fmt.Errorf("check map name: %w", err)
	}

	if taken > 0 {
		return models.Map{}, errs.ErrDuplicateMap
	}

	m := models.Map{Name: name, Image: s.importImage(ctx, in.ImageSource)}
	if err := db.Create(&m).Error; err != nil {
		if errors.Is(errs.DBErr(err), errs.ErrDuplicate) {
			return models.Map{}, errs.ErrDuplicateMap
		}

		return models.Map{}, fmt.Errorf("create map: %w", err)
	}

	slog.Info("Created map", slog.Uint64("map_id", uint64(m.ID)), slog.String("name", m.Name))

	return m, nil
}

// DeleteMap removes a map and every match played on it. Administrator only.
func (s *Service) DeleteMap(ctx context.Context, sess session.Session, mapID uint) error {
	if err := ownership.RequireAdmin(sess); err != nil {
		return err
	}

	db, err := s.store.DB(ctx)
	if err != nil {
		return err
	}

	result := db.Delete(&models.Map{}, mapID)
	if result.Error != nil {
		return fmt.Errorf("delete map: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.ErrMapNotFound
	}

	slog.Info("Deleted map", slog.Uint64("map_id", uint64(mapID)))

	return nil
}
