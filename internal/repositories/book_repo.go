package repositories

import "bookshelf/internal/models"

// BookRepository defines the interface for book data access.
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id uint) (*models.Book, error)
	GetByISBN(isbn string) (*models.Book, error)
	// GetAll and GetAllByOwner page ordered by ascending id.
	GetAll(offset, limit int) ([]models.Book, error)
	GetAllByOwner(ownerID uint, offset, limit int) ([]models.Book, error)
	Update(book *models.Book) error
	Delete(book *models.Book) error
}
