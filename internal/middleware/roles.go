package middleware

// roles.go: role-based access control middleware.
// The app has three roles: visitor, captain, admin.
// Route-level gates only cover what depends on the role alone (administrator-only routes);
// team ownership is checked by the services themselves.

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/models"
)

// RequireRole returns a middleware handler that allows only sessions whose role
// matches one of the provided roles. Returns HTTP 403 Forbidden if the role
// doesn't match.
//
//	api.Put("/store", middleware.RequireRole(models.RoleAdmin), handlers.SwitchStore(store))
//
// RequireRole must be used AFTER the Auth middleware, because Auth is what
// populates the session in the request context.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)

		for _, role := range roles {
			if sess.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
