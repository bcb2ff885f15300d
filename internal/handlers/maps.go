package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/roster"
)

// ListMaps handles GET /api/v1/maps.
func ListMaps(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		maps, err := svc.ListMaps(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(maps)
	}
}

// CreateMap handles POST /api/v1/maps. A duplicate name is 409 Conflict.
func CreateMap(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in roster.MapInput
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, errBadBody)
		}

		m, err := svc.CreateMap(c.UserContext(), middleware.CurrentSession(c), in)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// DeleteMap handles DELETE /api/v1/maps/:id. Administrator only.
func DeleteMap(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mapID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		if err := svc.DeleteMap(c.UserContext(), middleware.CurrentSession(c), mapID); err != nil {
			return respondError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
