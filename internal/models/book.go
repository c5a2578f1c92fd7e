package models

import "time"

// Book represents a book record owned by a single user. A nil ISBN means
// none was supplied; non-nil ISBNs are unique across the whole catalog.
type Book struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"type:varchar(255);index"`
	Author          string    `json:"author" gorm:"type:varchar(255);index"`
	Description     string    `json:"description" gorm:"type:text"`
	PublicationDate *string   `json:"publication_date,omitempty" gorm:"type:varchar(10)"`
	ISBN            *string   `json:"isbn,omitempty" gorm:"uniqueIndex;type:varchar(13)"`
	OwnerID         uint      `json:"owner_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookCreate is the payload for creating a book. The acting user becomes
// the owner. The isbn_code rule accepts exactly 10 or 13 decimal digits
// and performs no checksum verification.
type BookCreate struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Author          string  `json:"author" validate:"required,min=1,max=255"`
	Description     string  `json:"description"`
	PublicationDate *string `json:"publication_date" validate:"omitempty,datetime=2006-01-02"`
	ISBN            *string `json:"isbn" validate:"omitempty,isbn_code"`
}

// BookUpdate is a partial update: nil fields are left unchanged.
type BookUpdate struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=255"`
	Description     *string `json:"description"`
	PublicationDate *string `json:"publication_date" validate:"omitempty,datetime=2006-01-02"`
	ISBN            *string `json:"isbn" validate:"omitempty,isbn_code"`
}
