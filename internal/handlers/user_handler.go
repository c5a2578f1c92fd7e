package handlers

import (
	"log"

	"bookshelf/internal/models"
	"bookshelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
// The /me routes are registered before /:id so they win the match.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/me", h.HandleGetMe)
	userRoutes.Put("/me", h.HandleUpdateMe)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleListUsers lists all users. Superuser only.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	users, err := h.service.List(currentUser(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleCreateUser creates a new account. Superuser only.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserCreate
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.service.Create(currentUser(c), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleGetMe returns the caller's own profile.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// HandleUpdateMe applies a partial update to the caller's own profile.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var in models.UserUpdate
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing update profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.service.UpdateSelf(currentUser(c), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleGetUser fetches a user by id. Own record is always permitted;
// anyone else's requires superuser.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	user, err := h.service.Get(currentUser(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes a user account. Superuser only.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	user, err := h.service.Delete(currentUser(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
