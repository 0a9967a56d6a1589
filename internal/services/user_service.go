package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/models"
)

// UserService manages customer accounts. Users are identified by an
// email-shaped string; there is no authentication.
type UserService struct {
	users  *database.UserRepository
	logger *logrus.Logger
}

// NewUserService creates a new UserService
func NewUserService(users *database.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// AddUser registers a user with the given email and optional details.
func (s *UserService) AddUser(ctx context.Context, email, details string) (*models.User, error) {
	if !models.ValidEmail(email) {
		return nil, invalidArgf("email %q is malformed", email)
	}

	user, err := s.users.Create(email, details)
	if err != nil {
		return nil, classifyStoreError(err, "user "+email+" already exists")
	}

	s.logger.WithField("email", email).Info("User registered")
	return user, nil
}

// DeleteUser removes a user; tickets and reservations cascade. Deleting an
// unknown user is a precondition failure.
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	rows, err := s.users.Delete(email)
	if err != nil {
		return classifyStoreError(err, "")
	}
	if rows == 0 {
		return invalidArgf("user %s does not exist", email)
	}
	return nil
}
