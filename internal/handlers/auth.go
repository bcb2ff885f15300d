package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/session"
)

// LoginResponse carries the signed session token the client sends back as a bearer token.
type LoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Captain string `json:"captain,omitempty"`
}

// RegisterRequest is the JSON body of POST /api/v1/captains.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/login. Logging in again simply issues a new token.
func Login(auth *session.Authenticator, issuer *session.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var creds session.Credentials
		if err := c.BodyParser(&creds); err != nil {
			return respondError(c, errBadBody)
		}

		sess, err := auth.Login(c.UserContext(), creds)
		if err != nil {
			return respondError(c, err)
		}

		token, err := issuer.Issue(sess)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(LoginResponse{Token: token, Role: string(sess.Role), Captain: sess.Captain})
	}
}

// Logout handles POST /api/v1/logout. Tokens are stateless, so the client discarding its
// token is what ends the session; the response is the unauthenticated state.
func Logout(c *fiber.Ctx) error {
	return c.JSON(session.Session{})
}

// RegisterCaptain handles POST /api/v1/captains, the self-registration entry point.
func RegisterCaptain(auth *session.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, errBadBody)
		}

		captain, err := auth.Register(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"username": captain.Username})
	}
}

// MyTeam handles GET /api/v1/me/team: the team the calling captain may edit.
func MyTeam(authority *ownership.Authority) fiber.Handler {
	return func(c *fiber.Ctx) error {
		team, err := authority.OwnedTeam(c.UserContext(), middleware.CurrentSession(c))
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(team)
	}
}
