package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/roster"
)

// ListCaptains handles GET /api/v1/captains. Administrator only.
func ListCaptains(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		captains, err := svc.ListCaptains(c.UserContext(), middleware.CurrentSession(c))
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(captains)
	}
}

// DeleteCaptain handles DELETE /api/v1/captains/:username. Administrator only.
func DeleteCaptain(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.DeleteCaptain(c.UserContext(), middleware.CurrentSession(c), c.Params("username"))
		if err != nil {
			return respondError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
