package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
	"bookshelf/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
)

// BookService orchestrates book store operations under the
// authorization policy. Every operation takes the resolved acting user.
type BookService struct {
	bookRepo repositories.BookRepository
	events   *rabbitmq.Client
	validate *validator.Validate
}

// NewBookService creates a new BookService. events may be nil, in which
// case catalog event publishing is skipped.
func NewBookService(bookRepo repositories.BookRepository, events *rabbitmq.Client) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		events:   events,
		validate: newValidator(),
	}
}

// List returns a page of books: all of them for a superuser, only the
// caller's own otherwise.
func (s *BookService) List(user *models.User, skip, limit int) ([]models.Book, error) {
	if user.IsSuperuser {
		return s.bookRepo.GetAll(skip, limit)
	}
	return s.bookRepo.GetAllByOwner(user.ID, skip, limit)
}

// Create validates the draft and persists a new book owned by the
// acting user. A duplicate ISBN yields ErrConflict.
func (s *BookService) Create(user *models.User, in *models.BookCreate) (*models.Book, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}
	if in.ISBN != nil {
		if err := s.checkISBNFree(*in.ISBN, 0); err != nil {
			return nil, err
		}
	}

	book := &models.Book{
		Title:           in.Title,
		Author:          in.Author,
		Description:     in.Description,
		PublicationDate: in.PublicationDate,
		ISBN:            in.ISBN,
		OwnerID:         user.ID,
	}
	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}

	s.publishEvent("book.created", book)
	return book, nil
}

// Get returns the book with the given id, or ErrNotFound / ErrForbidden.
func (s *BookService) Get(user *models.User, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: book %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !CanAccessBook(user, book) {
		return nil, ErrForbidden
	}
	return book, nil
}

// GetByISBN looks a book up by exact ISBN under the same access check
// as Get. A non-owner gets ErrForbidden even though that reveals the
// record exists; the lookup contract accepts that.
func (s *BookService) GetByISBN(user *models.User, isbn string) (*models.Book, error) {
	book, err := s.bookRepo.GetByISBN(isbn)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: book with ISBN %s", ErrNotFound, isbn)
		}
		return nil, err
	}
	if !CanAccessBook(user, book) {
		return nil, ErrForbidden
	}
	return book, nil
}

// Update applies only the fields present in the patch, after the same
// existence and access checks as Get. Changing the ISBN to one held by
// another book yields ErrConflict, matching Create.
func (s *BookService) Update(user *models.User, id uint, in *models.BookUpdate) (*models.Book, error) {
	book, err := s.Get(user, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}
	if in.ISBN != nil && (book.ISBN == nil || *book.ISBN != *in.ISBN) {
		if err := s.checkISBNFree(*in.ISBN, book.ID); err != nil {
			return nil, err
		}
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.PublicationDate != nil {
		book.PublicationDate = in.PublicationDate
	}
	if in.ISBN != nil {
		book.ISBN = in.ISBN
	}

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes the book after the same existence and access checks as
// Get, and returns the record's prior state.
func (s *BookService) Delete(user *models.User, id uint) (*models.Book, error) {
	book, err := s.Get(user, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.Delete(book); err != nil {
		return nil, err
	}

	s.publishEvent("book.deleted", book)
	return book, nil
}

// checkISBNFree returns ErrConflict when the ISBN is held by a book
// other than the one being edited (selfID 0 means a create).
func (s *BookService) checkISBNFree(isbn string, selfID uint) error {
	existing, err := s.bookRepo.GetByISBN(isbn)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: a book with this ISBN already exists", ErrConflict)
}

// publishEvent sends a catalog event when an events client is wired.
// Publish failures are logged and never fail the request.
func (s *BookService) publishEvent(kind string, book *models.Book) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":    kind,
		"book_id":  book.ID,
		"owner_id": book.OwnerID,
		"title":    book.Title,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for book %d: %v", kind, book.ID, err)
		return
	}
	if err := s.events.Publish(kind, body); err != nil {
		log.Printf("Warning: failed to publish %s event for book %d: %v", kind, book.ID, err)
	}
}
