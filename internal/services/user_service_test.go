package services_test

import (
	"testing"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
	"bookshelf/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_List(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Non-superuser is rejected without touching the store
	_, err := service.List(stranger, 0, 100)
	assert.ErrorIs(t, err, services.ErrForbidden)

	users := []models.User{{ID: 1, Email: "a@example.com"}, {ID: 2, Email: "b@example.com"}}
	mockRepo.On("GetAll", 0, 100).Return(users, nil).Once()
	got, err := service.List(superuser, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, users, got)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Create(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	in := &models.UserCreate{Email: "new@example.com", Password: "password123"}

	// Non-superuser cannot create accounts
	_, err := service.Create(stranger, in)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// Successful creation stores a bcrypt hash, never the plaintext
	mockRepo.On("GetByEmail", in.Email).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	user, err := service.Create(superuser, in)
	assert.NoError(t, err)
	assert.Equal(t, in.Email, user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, in.Password, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)))
	mockRepo.AssertExpectations(t)

	// Duplicate email
	mockRepo.On("GetByEmail", in.Email).Return(&models.User{ID: 5, Email: in.Email}, nil).Once()
	_, err = service.Create(superuser, in)
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Short password fails validation
	_, err = service.Create(superuser, &models.UserCreate{Email: "short@example.com", Password: "tiny"})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Password")

	// Invalid email fails validation
	_, err = service.Create(superuser, &models.UserCreate{Email: "not-an-email", Password: "password123"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Email")
}

func TestUserService_UpdateSelf(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Only a password supplied: email and flags stay untouched, hash
	// changes
	user := &models.User{ID: 4, Email: "me@example.com", PasswordHash: "old-hash", IsActive: true, IsSuperuser: false}
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := service.UpdateSelf(user, &models.UserUpdate{Password: strptr("newpassword1")})
	assert.NoError(t, err)
	assert.Equal(t, "me@example.com", updated.Email)
	assert.False(t, updated.IsSuperuser)
	assert.True(t, updated.IsActive)
	assert.NotEqual(t, "old-hash", updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword1")))
	mockRepo.AssertExpectations(t)

	// Changing the email to a taken one conflicts
	user2 := &models.User{ID: 5, Email: "me2@example.com", IsActive: true}
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: 9}, nil).Once()
	_, err = service.UpdateSelf(user2, &models.UserUpdate{Email: strptr("taken@example.com")})
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Resubmitting one's own email is a no-op, not a conflict
	user3 := &models.User{ID: 6, Email: "same@example.com", IsActive: true}
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, err = service.UpdateSelf(user3, &models.UserUpdate{Email: strptr("same@example.com")})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Short replacement password fails validation
	_, err = service.UpdateSelf(user3, &models.UserUpdate{Password: strptr("tiny")})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Password")
}

func TestUserService_Get(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Own record is always permitted
	me := &models.User{ID: 2, Email: "stranger@example.com", IsActive: true}
	mockRepo.On("GetByID", uint(2)).Return(me, nil).Once()
	got, err := service.Get(stranger, 2)
	assert.NoError(t, err)
	assert.Equal(t, me.ID, got.ID)

	// Someone else's record requires superuser
	_, err = service.Get(stranger, 1)
	assert.ErrorIs(t, err, services.ErrForbidden)

	mockRepo.On("GetByID", uint(1)).Return(&models.User{ID: 1}, nil).Once()
	_, err = service.Get(superuser, 1)
	assert.NoError(t, err)

	// Missing record
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.Get(superuser, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Non-superuser cannot delete accounts, not even their own
	_, err := service.Delete(stranger, stranger.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// Successful deletion returns the removed record
	victim := &models.User{ID: 8, Email: "victim@example.com"}
	mockRepo.On("GetByID", uint(8)).Return(victim, nil).Once()
	mockRepo.On("Delete", victim).Return(nil).Once()
	got, err := service.Delete(superuser, 8)
	assert.NoError(t, err)
	assert.Equal(t, victim.Email, got.Email)
	mockRepo.AssertExpectations(t)

	// Missing record
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.Delete(superuser, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
