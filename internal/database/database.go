package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects using the driver implied by the DSN: postgres for
// "postgres://" URLs and key=value DSNs, sqlite for everything else
// (a file path or an in-memory DSN).
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Book{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedSuperuser creates the bootstrap administrator when no account
// with the configured email exists yet. An empty email disables the
// seed.
func SeedSuperuser(userRepo repositories.UserRepository, email, password string) error {
	if email == "" {
		return nil
	}
	if _, err := userRepo.GetByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to seed superuser: %w", err)
	}
	log.Printf("Seeded first superuser %s (ID: %d)", email, user.ID)
	return nil
}
