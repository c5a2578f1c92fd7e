package handlers

import (
	"errors"
	"log"

	"bookshelf/internal/middleware"
	"bookshelf/internal/models"
	"bookshelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError translates service failures into HTTP responses.
// Unexpected errors are logged with full detail server-side and
// surfaced as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInactiveAccount):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Printf("Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "An unexpected error occurred",
		})
	}
}

// currentUser pulls the account stored by the auth middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(middleware.CurrentUserKey).(*models.User)
	return user
}

// pagination reads the skip/limit query parameters with the store
// defaults.
func pagination(c *fiber.Ctx) (skip, limit int) {
	return c.QueryInt("skip", 0), c.QueryInt("limit", 100)
}
