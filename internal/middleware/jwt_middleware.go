package middleware

import (
	"errors"
	"log"
	"strings"

	"bookshelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CurrentUserKey is the Locals key under which the resolved account is
// stored for downstream handlers.
const CurrentUserKey = "currentUser"

// AuthRequired is a Fiber middleware that resolves the bearer token and
// stores the authenticated account in the request context. It performs
// no authorization decisions; those belong to the services.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.ResolveToken(parts[1])
		if err != nil {
			log.Printf("Token resolution failed: %v", err)
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "User not found",
				})
			case errors.Is(err, services.ErrInactiveAccount):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Inactive account",
				})
			default:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired token",
				})
			}
		}

		c.Locals(CurrentUserKey, user)

		return c.Next()
	}
}
