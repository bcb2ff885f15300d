// Package roster manages teams, their players, maps and captain accounts.
//
// Every mutating call takes the caller's session and checks it through the ownership
// package before writing:
//   - teams are created by administrators, and edited or deleted by their captain or an administrator
//   - players follow their team's rules; non-administrators are capped at 40 players per team
//   - maps are created by any captain or administrator and deleted by administrators only
package roster

import (
	"context"

	"github.com/trentd187/statteam/internal/assets"
	"github.com/trentd187/statteam/internal/database"
	"gorm.io/gorm"
)

// Service is the roster API.
type Service struct {
	store  *database.Store
	images *assets.Library
}

func NewService(store *database.Store, images *assets.Library) *Service {
	return &Service{store: store, images: images}
}

// importImage copies an optional image. Failures are logged by the library and yield "".
func (s *Service) importImage(ctx context.Context, src string) string {
	if s.images == nil || src == "" {
		return ""
	}

	return s.images.Import(ctx, src)
}

// byName orders rows by name ignoring case, with the exact name as a tie breaker.
func byName(db *gorm.DB) *gorm.DB {
	return db.Order("LOWER(name)").Order("name").Order("id")
}

func optional(name string) *string {
	if name == "" {
		return nil
	}

	return &name
}
