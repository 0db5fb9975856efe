package services

import (
	"splitbill/internal/apperrors"
	"splitbill/internal/models"
	"splitbill/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user registration and lookup.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Register hashes the user's password and stores a new user record.
// The email and mobile number must not already be registered.
func (s *UserService) Register(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err != nil {
		return apperrors.Internal("failed to check email uniqueness: %v", err)
	} else if existing != nil {
		return apperrors.Conflict("email '%s' already registered", user.Email)
	}
	if existing, err := s.userRepo.GetByMobileNumber(user.MobileNumber); err != nil {
		return apperrors.Internal("failed to check mobile number uniqueness: %v", err)
	} else if existing != nil {
		return apperrors.Conflict("mobile number '%s' already registered", user.MobileNumber)
	}

	// bcrypt salts every hash individually, so two users with the same
	// password never share a stored credential.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash password: %v", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return apperrors.Internal("failed to register user: %v", err)
	}
	return nil
}

// GetByID retrieves a single user by their ID. The credential hash stays
// inside this component: models.User never serializes the Password field.
func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get user %s: %v", id, err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

// Exists reports whether a user with the given ID is registered.
func (s *UserService) Exists(id string) (bool, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return false, apperrors.Internal("failed to check user %s: %v", id, err)
	}
	return user != nil, nil
}
