// Package handlers contains the HTTP route handler functions for the local StatTeam API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, calling the service that owns the operation, and writing a response.
//
// Each exported function follows the "handler factory" pattern: it takes the service it
// needs and returns a fiber.Handler (a function that handles a single HTTP request).
// This lets us inject dependencies without using global variables.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// No store access and no session are needed.
func HealthCheck(c *fiber.Ctx) error {
	// c.JSON serializes the map to JSON and sends it with a 200 OK status.
	// fiber.Map is just a shorthand for map[string]interface{}.
	return c.JSON(fiber.Map{"status": "ok"})
}
