package database

import (
	"fmt"

	"github.com/railtraits/traits-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user row and returns it.
func (r *UserRepository) Create(email, details string) (*models.User, error) {
	query := `
		INSERT INTO users (email, details)
		VALUES ($1, $2)
		RETURNING user_id
	`

	user := &models.User{Email: email, Details: details}
	if err := r.db.QueryRow(query, email, details).Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Returns sql.ErrNoRows when the user
// does not exist.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT user_id, email, details
		FROM users
		WHERE email = $1
	`

	var user models.User
	if err := r.db.Get(&user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user; tickets and reservations cascade. Returns the
// number of rows deleted.
func (r *UserRepository) Delete(email string) (int64, error) {
	query := `DELETE FROM users WHERE email = $1`

	res, err := r.db.Exec(query, email)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.RowsAffected()
}

// List returns all users ordered by email.
func (r *UserRepository) List() ([]models.User, error) {
	query := `
		SELECT user_id, email, details
		FROM users
		ORDER BY email
	`

	var users []models.User
	if err := r.db.Select(&users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
