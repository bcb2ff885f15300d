package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// Serialize runs requests one at a time. Every operation, including a store switch,
// completes before the next request starts.
func Serialize() fiber.Handler {
	var mu sync.Mutex

	return func(c *fiber.Ctx) error {
		mu.Lock()
		defer mu.Unlock()

		return c.Next()
	}
}
