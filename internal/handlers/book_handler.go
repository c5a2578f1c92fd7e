package handlers

import (
	"log"

	"bookshelf/internal/models"
	"bookshelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for books. All routes assume the
// auth middleware has already resolved the acting user; authorization
// itself happens in the service.
type BookHandler struct {
	service *services.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service: service,
	}
}

// RegisterRoutes registers the book routes with the Fiber app.
// The ISBN route is registered before /:id so it wins the match.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", h.HandleListBooks)
	bookRoutes.Post("/", h.HandleCreateBook)
	bookRoutes.Get("/isbn/:isbn", h.HandleGetBookByISBN)
	bookRoutes.Get("/:id", h.HandleGetBook)
	bookRoutes.Put("/:id", h.HandleUpdateBook)
	bookRoutes.Delete("/:id", h.HandleDeleteBook)
}

// HandleListBooks lists the caller's books, or every book for a
// superuser.
func (h *BookHandler) HandleListBooks(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	books, err := h.service.List(currentUser(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(books)
}

// HandleCreateBook creates a new book owned by the caller.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	var in models.BookCreate
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing create book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	book, err := h.service.Create(currentUser(c), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// HandleGetBook fetches a single book by id.
func (h *BookHandler) HandleGetBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid book id",
		})
	}

	book, err := h.service.Get(currentUser(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// HandleGetBookByISBN fetches a single book by exact ISBN.
func (h *BookHandler) HandleGetBookByISBN(c *fiber.Ctx) error {
	book, err := h.service.GetByISBN(currentUser(c), c.Params("isbn"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// HandleUpdateBook applies a partial update to a book.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid book id",
		})
	}

	var in models.BookUpdate
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing update book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	book, err := h.service.Update(currentUser(c), uint(id), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// HandleDeleteBook deletes a book and returns its prior state.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid book id",
		})
	}

	book, err := h.service.Delete(currentUser(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}
