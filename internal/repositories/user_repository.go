package repositories

import "splitbill/internal/models"

// UserRepository defines the interface for user data access.
// Lookup methods return (nil, nil) when no matching user exists.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByMobileNumber(mobileNumber string) (*models.User, error)
}
