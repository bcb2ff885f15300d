// Package middleware contains HTTP middleware functions for the local StatTeam API.
// Middleware sits between the HTTP server and route handlers. It runs on every
// request that passes through it, making it the right place for cross-cutting
// concerns like working out who is calling and keeping requests one at a time.
package middleware

import (
	"errors"
	"strings"

	// fiber is the HTTP framework; fiber.Handler is the function signature for middleware
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/session"
)

// sessionKey is the c.Locals key the resolved session is stored under.
const sessionKey = "session"

// Auth returns a Fiber middleware handler that:
//  1. Reads the optional "Authorization: Bearer <token>" header
//  2. Verifies the token with the issuer that signed it at login
//  3. Checks a captain token against the captain table of the open store
//  4. Stores the resulting session in the request context (c.Locals)
//     so downstream handlers can read it without re-parsing the token
//
// A request without a token runs as a Visitor, so reading never needs a login.
// A token that is present but malformed or forged is rejected with 401, as is a captain
// token for a deleted captain or for a store other than the one now open.
func Auth(issuer *session.Issuer, auth *session.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(sessionKey, session.Visitor())

			return c.Next()
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header",
			})
		}

		// Strip the "Bearer " prefix to get just the raw token string
		sess, err := issuer.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		sess, err = auth.Resolve(c.UserContext(), sess)
		if err != nil {
			if errors.Is(err, errs.ErrAuthentication) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			return err
		}

		c.Locals(sessionKey, sess)

		// Pass control to the next middleware or route handler
		return c.Next()
	}
}

// CurrentSession returns the session Auth stored for this request. Routes mounted without
// Auth get a Visitor.
func CurrentSession(c *fiber.Ctx) session.Session {
	sess, ok := c.Locals(sessionKey).(session.Session)
	if !ok {
		return session.Visitor()
	}

	return sess
}
