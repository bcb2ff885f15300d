package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/roster"
)

// ListPlayers handles GET /api/v1/teams/:id/players.
func ListPlayers(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		players, err := svc.ListPlayers(c.UserContext(), teamID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(players)
	}
}

// CreatePlayer handles POST /api/v1/teams/:id/players.
func CreatePlayer(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		var in roster.PlayerInput
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, errBadBody)
		}

		player, err := svc.CreatePlayer(c.UserContext(), middleware.CurrentSession(c), teamID, in)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(player)
	}
}

// UpdatePlayer handles PUT /api/v1/players/:id.
func UpdatePlayer(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		var in roster.PlayerInput
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, errBadBody)
		}

		player, err := svc.UpdatePlayer(c.UserContext(), middleware.CurrentSession(c), playerID, in)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(player)
	}
}

// DeletePlayer handles DELETE /api/v1/players/:id.
func DeletePlayer(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		if err := svc.DeletePlayer(c.UserContext(), middleware.CurrentSession(c), playerID); err != nil {
			return respondError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PlayerKD handles GET /api/v1/players/:id/kd.
func PlayerKD(engine *metrics.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		totals, err := engine.PlayerKD(c.UserContext(), playerID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(totals)
	}
}
