package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/database"
)

// StoreRequest is the JSON body of PUT /api/v1/store.
type StoreRequest struct {
	Location string `json:"location"` // SQLite file path or postgres:// URL
}

// GetStore handles GET /api/v1/store.
func GetStore(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"location": store.Location()})
	}
}

// SwitchStore handles PUT /api/v1/store. The route is administrator only; requests are
// serialized, so nothing else is in flight while the handle changes.
func SwitchStore(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req StoreRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, errBadBody)
		}

		if err := store.Switch(c.UserContext(), req.Location); err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{"location": store.Location()})
	}
}
