package services_test

import (
	"testing"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
	"bookshelf/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookRepository is a mock implementation of repositories.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(book *models.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(id uint) (*models.Book, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByISBN(isbn string) (*models.Book, error) {
	args := m.Called(isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetAll(offset, limit int) ([]models.Book, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetAllByOwner(ownerID uint, offset, limit int) ([]models.Book, error) {
	args := m.Called(ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Update(book *models.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(book *models.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func strptr(s string) *string { return &s }

var (
	owner     = &models.User{ID: 1, Email: "owner@example.com", IsActive: true}
	stranger  = &models.User{ID: 2, Email: "stranger@example.com", IsActive: true}
	superuser = &models.User{ID: 3, Email: "admin@example.com", IsActive: true, IsSuperuser: true}
)

func TestBookService_List(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	ownBooks := []models.Book{{ID: 1, Title: "Dune", Author: "Herbert", OwnerID: owner.ID}}
	allBooks := append(ownBooks, models.Book{ID: 2, Title: "Solaris", Author: "Lem", OwnerID: stranger.ID})

	// Non-superuser sees only their own books
	mockRepo.On("GetAllByOwner", owner.ID, 0, 100).Return(ownBooks, nil).Once()
	books, err := service.List(owner, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, ownBooks, books)
	mockRepo.AssertExpectations(t)

	// Superuser sees everything
	mockRepo.On("GetAll", 0, 100).Return(allBooks, nil).Once()
	books, err = service.List(superuser, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	mockRepo.AssertExpectations(t)
}

func TestBookService_Create(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	// Test successful creation assigns ownership to the acting user
	in := &models.BookCreate{Title: "Dune", Author: "Herbert", ISBN: strptr("9780441013593")}
	mockRepo.On("GetByISBN", "9780441013593").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Book")).Return(nil).Once()
	book, err := service.Create(owner, in)
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, book.OwnerID)
	assert.Equal(t, "Dune", book.Title)
	mockRepo.AssertExpectations(t)

	// Test duplicate ISBN
	mockRepo.On("GetByISBN", "9780441013593").Return(&models.Book{ID: 9, ISBN: strptr("9780441013593")}, nil).Once()
	_, err = service.Create(owner, in)
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Test missing title fails validation before touching the store
	_, err = service.Create(owner, &models.BookCreate{Author: "Herbert"})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Title")

	// Test bad ISBNs: letters, wrong length
	for _, isbn := range []string{"abcdefghij", "12345", "97804410135931"} {
		_, err = service.Create(owner, &models.BookCreate{Title: "Dune", Author: "Herbert", ISBN: strptr(isbn)})
		assert.ErrorAs(t, err, &verr, "isbn %q should be rejected", isbn)
		assert.Contains(t, verr.Fields, "ISBN")
	}

	// Test no ISBN skips the uniqueness lookup entirely
	mockRepo.On("Create", mock.AnythingOfType("*models.Book")).Return(nil).Once()
	book, err = service.Create(owner, &models.BookCreate{Title: "Dune", Author: "Herbert"})
	assert.NoError(t, err)
	assert.Nil(t, book.ISBN)
	mockRepo.AssertExpectations(t)
}

func TestBookService_Get(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	book := &models.Book{ID: 1, Title: "Dune", Author: "Herbert", OwnerID: owner.ID}

	// Owner can read their own book
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	got, err := service.Get(owner, 1)
	assert.NoError(t, err)
	assert.Equal(t, book, got)

	// Superuser can read anyone's book
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	_, err = service.Get(superuser, 1)
	assert.NoError(t, err)

	// A non-owner gets forbidden
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	_, err = service.Get(stranger, 1)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// Missing book
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.Get(owner, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBookService_GetByISBN(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	book := &models.Book{ID: 1, Title: "Dune", OwnerID: owner.ID, ISBN: strptr("9780441013593")}

	// Same access check as Get: a non-owner gets forbidden, not a 404
	mockRepo.On("GetByISBN", "9780441013593").Return(book, nil).Once()
	_, err := service.GetByISBN(stranger, "9780441013593")
	assert.ErrorIs(t, err, services.ErrForbidden)

	mockRepo.On("GetByISBN", "9780441013593").Return(book, nil).Once()
	got, err := service.GetByISBN(owner, "9780441013593")
	assert.NoError(t, err)
	assert.Equal(t, book, got)

	mockRepo.On("GetByISBN", "0000000000").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.GetByISBN(owner, "0000000000")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBookService_Update(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	// Test partial update: only the title changes
	book := &models.Book{ID: 1, Title: "Dune", Author: "Herbert", Description: "desert planet", OwnerID: owner.ID}
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Book")).Return(nil).Once()
	updated, err := service.Update(owner, 1, &models.BookUpdate{Title: strptr("Dune Messiah")})
	assert.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, "Herbert", updated.Author)
	assert.Equal(t, "desert planet", updated.Description)
	mockRepo.AssertExpectations(t)

	// Test non-owner is rejected before any validation
	book2 := &models.Book{ID: 2, Title: "Solaris", Author: "Lem", OwnerID: owner.ID}
	mockRepo.On("GetByID", uint(2)).Return(book2, nil).Once()
	_, err = service.Update(stranger, 2, &models.BookUpdate{Title: strptr("Hijacked")})
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)

	// Test changing the ISBN to one held by another book conflicts
	book3 := &models.Book{ID: 3, Title: "Solaris", Author: "Lem", OwnerID: owner.ID}
	taken := &models.Book{ID: 4, ISBN: strptr("9780441013593")}
	mockRepo.On("GetByID", uint(3)).Return(book3, nil).Once()
	mockRepo.On("GetByISBN", "9780441013593").Return(taken, nil).Once()
	_, err = service.Update(owner, 3, &models.BookUpdate{ISBN: strptr("9780441013593")})
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Test resubmitting the book's own ISBN is not a conflict
	book4 := &models.Book{ID: 5, Title: "Dune", Author: "Herbert", OwnerID: owner.ID, ISBN: strptr("9780441013593")}
	mockRepo.On("GetByID", uint(5)).Return(book4, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Book")).Return(nil).Once()
	_, err = service.Update(owner, 5, &models.BookUpdate{ISBN: strptr("9780441013593")})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test missing book
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.Update(owner, 99, &models.BookUpdate{})
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBookService_Delete(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := services.NewBookService(mockRepo, nil)

	book := &models.Book{ID: 1, Title: "Dune", Author: "Herbert", OwnerID: owner.ID}

	// Test delete returns the record's prior state
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	mockRepo.On("Delete", book).Return(nil).Once()
	deleted, err := service.Delete(owner, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)
	mockRepo.AssertExpectations(t)

	// Test a non-owner cannot delete
	mockRepo.On("GetByID", uint(1)).Return(book, nil).Once()
	_, err = service.Delete(stranger, 1)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)

	// Test deleting a missing id reports not found every time
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Twice()
	_, err = service.Delete(owner, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = service.Delete(owner, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
