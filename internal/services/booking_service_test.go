package services

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railtraits/traits-backend/internal/database"
)

func TestBuyTicketErrors(t *testing.T) {
	store, mock := newStoreMock(t)
	svc := NewBookingService(
		database.NewUserRepository(store),
		database.NewTicketRepository(store),
		quietLogger(),
	)
	ctx := context.Background()

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"user_id", "email", "details"}).
			AddRow(7, "rider@example.com", "")
	}

	t.Run("Unknown User Is Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		ticket, err := svc.BuyTicket(ctx, "ghost@example.com", 42, false)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, ticket)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Capacity Exhausted Is Invalid Argument", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("rider@example.com").
			WillReturnRows(userRows())
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tickets`).
			WithArgs(int64(7), int64(42), true).
			WillReturnRows(sqlmock.NewRows([]string{"ticket_id", "booking_time", "price"}).
				AddRow(101, time.Now(), 32))
		mock.ExpectQuery(`SELECT count\(res.reservation_id\)`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"reserved", "capacity"}).AddRow(5, 5))
		mock.ExpectRollback()

		ticket, err := svc.BuyTicket(ctx, "rider@example.com", 42, true)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, ticket)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// Two concurrent purchases of the last seat: the loser's reservation
	// insert fails with a serialization error and the caller may retry.
	t.Run("Serialization Failure Is A Conflict", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("rider@example.com").
			WillReturnRows(userRows())
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tickets`).
			WithArgs(int64(7), int64(42), true).
			WillReturnRows(sqlmock.NewRows([]string{"ticket_id", "booking_time", "price"}).
				AddRow(102, time.Now(), 32))
		mock.ExpectQuery(`SELECT count\(res.reservation_id\)`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"reserved", "capacity"}).AddRow(4, 5))
		mock.ExpectExec(`INSERT INTO reservations`).
			WithArgs(int64(102)).
			WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()

		ticket, err := svc.BuyTicket(ctx, "rider@example.com", 42, true)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Nil(t, ticket)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deadlock Is A Conflict", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("rider@example.com").
			WillReturnRows(userRows())
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO tickets`).
			WithArgs(int64(7), int64(42), false).
			WillReturnError(&pq.Error{Code: "40P01"})
		mock.ExpectRollback()

		ticket, err := svc.BuyTicket(ctx, "rider@example.com", 42, false)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Nil(t, ticket)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// newStoreMock backs the repositories with a sqlmock connection wrapped in
// sqlx, so Get/Select scan through struct tags as in production.
func newStoreMock(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
