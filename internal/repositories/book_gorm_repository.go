package repositories

import (
	"errors"
	"fmt"

	"bookshelf/internal/models"

	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID %d: %w", id, err)
	}
	return &book, nil
}

// GetByISBN retrieves a single book by its exact ISBN.
func (r *GORMBookRepository) GetByISBN(isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "isbn = ?", isbn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ISBN %s: %w", isbn, err)
	}
	return &book, nil
}

// GetAll retrieves a page of all books ordered by ascending id.
func (r *GORMBookRepository) GetAll(offset, limit int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("id asc").Offset(offset).Limit(limit).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	return books, nil
}

// GetAllByOwner retrieves a page of books belonging to one owner.
func (r *GORMBookRepository) GetAllByOwner(ownerID uint, offset, limit int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.Where("owner_id = ?", ownerID).Order("id asc").Offset(offset).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get books for owner %d: %w", ownerID, err)
	}
	return books, nil
}

// Update persists changes to an existing book.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book)
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book from the database.
func (r *GORMBookRepository) Delete(book *models.Book) error {
	res := r.db.Delete(&models.Book{}, "id = ?", book.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book %d: %w", book.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
