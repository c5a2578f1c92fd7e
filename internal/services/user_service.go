package services

import (
	"errors"
	"fmt"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserService orchestrates credential store operations under the
// superuser-only and self-service rules.
type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: newValidator(),
	}
}

// List returns a page of all users. Superuser only.
func (s *UserService) List(requester *models.User, skip, limit int) ([]models.User, error) {
	if !CanManageUsers(requester) {
		return nil, ErrForbidden
	}
	return s.userRepo.GetAll(skip, limit)
}

// Create persists a new account with a freshly computed password hash.
// Superuser only; a duplicate email yields ErrConflict.
func (s *UserService) Create(requester *models.User, in *models.UserCreate) (*models.User, error) {
	if !CanManageUsers(requester) {
		return nil, ErrForbidden
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}
	if err := s.checkEmailFree(in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     active,
		IsSuperuser:  in.IsSuperuser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSelf applies the provided fields to the caller's own record.
// A user may always update their own profile; the superuser and active
// flags are untouchable here. The password is re-hashed when changed.
func (s *UserService) UpdateSelf(user *models.User, in *models.UserUpdate) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := s.checkEmailFree(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given id. Always permitted for one's
// own record; anyone else's requires the user-management privilege.
func (s *UserService) Get(requester *models.User, id uint) (*models.User, error) {
	if requester.ID != id && !CanManageUsers(requester) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user and, in the same transaction, every book they
// own. Superuser only.
func (s *UserService) Delete(requester *models.User, id uint) (*models.User, error) {
	if !CanManageUsers(requester) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	if err := s.userRepo.Delete(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkEmailFree(email string) error {
	_, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return fmt.Errorf("%w: a user with this email already exists", ErrConflict)
}
