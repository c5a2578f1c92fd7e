package repositories

import "bookshelf/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetAll pages through users ordered by ascending id.
	GetAll(offset, limit int) ([]models.User, error)
	Update(user *models.User) error
	// Delete removes the user and every book they own in one transaction.
	Delete(user *models.User) error
}
