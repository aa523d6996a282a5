package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CheckOrigin rejects requests whose Referer or Origin does not match
// the configured allow-list.
func CheckOrigin(allowedOrigins []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		referer := c.Get("Referer")
		origin := c.Get("Origin")

		validReferer := false
		if referer != "" {
			for _, allowed := range allowedOrigins {
				if strings.HasPrefix(referer, allowed) {
					validReferer = true
					break
				}
			}
		}

		validOrigin := false
		if origin != "" {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					validOrigin = true
					break
				}
			}
		}

		if !validReferer && !validOrigin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Invalid origin",
			})
		}

		return c.Next()
	}
}
