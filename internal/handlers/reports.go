package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/export"
	"github.com/trentd187/statteam/internal/metrics"
)

// Leaderboard handles GET /api/v1/leaderboard.
func Leaderboard(engine *metrics.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		standings, err := engine.Leaderboard(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(standings)
	}
}

// Export handles GET /api/v1/exports/:kind and sends the report as a CSV attachment.
func Export(engine *metrics.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := export.ParseKind(c.Params("kind"))
		if err != nil {
			return respondError(c, err)
		}

		// Render to a buffer first so a failed query still produces a JSON error.
		var buf bytes.Buffer
		if err := export.Write(c.UserContext(), &buf, engine, kind); err != nil {
			return respondError(c, err)
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", kind.FileName()))

		return c.Send(buf.Bytes())
	}
}
