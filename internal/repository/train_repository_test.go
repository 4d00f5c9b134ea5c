package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainSetActiveNoOpStillSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTrainRepo(db)

	// Zero affected rows because the flag already had that value; the
	// follow-up lookup proves the train exists.
	mock.ExpectExec("UPDATE trains SET is_active").
		WithArgs(true, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT train_id, train_name, fare_per_km, is_active FROM trains").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"train_id", "train_name", "fare_per_km", "is_active"}).
			AddRow(5, "Night Express", 2.5, true))

	assert.NoError(t, repo.SetActive(context.Background(), 5, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainSetActiveMissingTrain(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTrainRepo(db)

	mock.ExpectExec("UPDATE trains SET is_active").
		WithArgs(false, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT train_id, train_name, fare_per_km, is_active FROM trains").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"train_id", "train_name", "fare_per_km", "is_active"}))

	assert.ErrorIs(t, repo.SetActive(context.Background(), 99, false), ErrTrainNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
