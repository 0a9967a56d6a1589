package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railtraits/traits-backend/internal/models"
)

func TestCreateTrain(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewTrainRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO trains`).
			WithArgs("IC-100", 120, models.TrainStatusOperational).
			WillReturnRows(sqlmock.NewRows([]string{"train_id"}).AddRow(3))

		train, err := repo.Create("IC-100", 120, models.TrainStatusOperational)
		require.NoError(t, err)
		assert.Equal(t, int64(3), train.ID)
		assert.Equal(t, 120, train.Capacity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO trains`).
			WithArgs("IC-100", 120, models.TrainStatusOperational).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		train, err := repo.Create("IC-100", 120, models.TrainStatusOperational)
		assert.Error(t, err)
		assert.Nil(t, train)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTrainByName(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewTrainRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains WHERE train_name`).
			WithArgs("IC-100").
			WillReturnRows(sqlmock.NewRows([]string{"train_id", "train_name", "capacity", "status"}).
				AddRow(3, "IC-100", 120, "OPERATIONAL"))

		train, err := repo.GetByName("IC-100")
		require.NoError(t, err)
		assert.Equal(t, models.TrainStatusOperational, train.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trains WHERE train_name`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		train, err := repo.GetByName("ghost")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, train)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateTrain(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewTrainRepository(mockDB)

	t.Run("Partial Update Keeps Other Fields", func(t *testing.T) {
		status := models.TrainStatusBroken

		mock.ExpectExec(`UPDATE trains`).
			WithArgs("IC-100", nil, &status).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Update("IC-100", nil, &status)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Train Updates Nothing", func(t *testing.T) {
		capacity := 80

		mock.ExpectExec(`UPDATE trains`).
			WithArgs("ghost", &capacity, nil).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Update("ghost", &capacity, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteTrain(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewTrainRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trains WHERE train_name`).
			WithArgs("IC-100").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Delete("IC-100")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Train Is Not An Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trains WHERE train_name`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Delete("ghost")
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
