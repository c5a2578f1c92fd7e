package services

import "bookshelf/internal/models"

// The authorization policy lives here and nowhere else: handlers resolve
// identity and map responses, services consult these two predicates.

// CanAccessBook reports whether the user may read, modify, or delete the
// book. Superusers may touch everything; everyone else only their own
// records.
func CanAccessBook(user *models.User, book *models.Book) bool {
	return user.IsSuperuser || book.OwnerID == user.ID
}

// CanManageUsers gates user listing, creation, and deletion.
// Self-service profile updates bypass this check entirely.
func CanManageUsers(user *models.User) bool {
	return user.IsSuperuser
}
