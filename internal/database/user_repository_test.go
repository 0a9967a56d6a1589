package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		email := "rider@example.com"

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(email, "frequent traveller").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

		user, err := repo.Create(email, "frequent traveller")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, email, user.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("rider@example.com", "").
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		user, err := repo.Create("rider@example.com", "")
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("rider@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "details"}).
				AddRow(7, "rider@example.com", "frequent traveller"))

		user, err := repo.GetByEmail("rider@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "frequent traveller", user.Details)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail("ghost@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteUser(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE email`).
			WithArgs("rider@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Delete("rider@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing User Deletes Nothing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Delete("ghost@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// newMockDB wraps a sqlmock connection in the repository DB interface. The
// sqlx layer is real, so Get/Select scan through struct tags exactly as in
// production.
func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}
