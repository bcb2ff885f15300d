package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/match"
	"github.com/trentd187/statteam/internal/middleware"
)

// RecordMatch handles POST /api/v1/matches. The body is a match.Result; both sides and all
// player stats are committed together or not at all.
func RecordMatch(recorder *match.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var result match.Result
		if err := c.BodyParser(&result); err != nil {
			return respondError(c, errBadBody)
		}

		recorded, err := recorder.Record(c.UserContext(), middleware.CurrentSession(c), result)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(recorded)
	}
}
