package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/log"
)

var errBadBody = fmt.Errorf("%w: invalid request body", errs.ErrValidation)

// statusFor maps an error category to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, errs.ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, errs.ErrResource):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": "..."}. Uncategorised errors are logged and
// their text is not sent back.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("Request failed", slog.String("path", c.Path()), log.ErrAttr(err))

		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// idParam reads a positive integer route parameter such as :id.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errs.ErrValidation, name)
	}

	return uint(id), nil
}

// optionalID reads an optional positive integer query parameter.
func optionalID(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", errs.ErrValidation, name)
	}

	value := uint(id)

	return &value, nil
}
