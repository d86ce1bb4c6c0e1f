package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensorhub/internal/models"
)

func passFixtures() ([]models.Sensor, []models.Reading, []models.Notification) {
	polledAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	value := "21.5"
	sensors := []models.Sensor{{
		ID:           "row-1",
		SensorID:     "s1",
		LastValue:    &value,
		LastPolledAt: &polledAt,
	}}
	readings := []models.Reading{{
		ID:        1,
		SensorID:  "s1",
		Value:     "21.5",
		ValueType: "temperature",
		Timestamp: polledAt,
	}}
	notifications := []models.Notification{{
		ID:      "n1",
		UserID:  "alice",
		Message: "breach",
	}}
	return sensors, readings, notifications
}

func TestCommitBatchAppliesAllMutations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sensors, readings, notifications := passFixtures()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE sensors`).
		WithArgs("s1", sensors[0].LastValue, sensors[0].LastPolledAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE readings`).
		WithArgs("s1", "21.5", "temperature", readings[0].Timestamp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("n1", "alice", "breach").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	store := NewStore(db)
	require.NoError(t, store.CommitBatch(context.Background(), sensors, readings, notifications))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBatchRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sensors, readings, notifications := passFixtures()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE sensors`).
		WithArgs("s1", sensors[0].LastValue, sensors[0].LastPolledAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE readings`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewStore(db)
	err = store.CommitBatch(context.Background(), sensors, readings, notifications)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBatchEmptyPass(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	require.NoError(t, store.CommitBatch(context.Background(), nil, nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet(), "empty pass opens no transaction")
}

func TestSeedSensorsInsertsSensorWithReading(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	polledAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	value := "1"
	sensors := []models.Sensor{{
		ID:                 "row-2",
		SensorID:           "fresh",
		Description:        "garden",
		MeasurementType:    "humidity",
		MinPollIntervalSec: 30,
		LastValue:          &value,
		LastPolledAt:       &polledAt,
	}}
	seeds := []models.Reading{{
		SensorID:  "fresh",
		Value:     "1",
		ValueType: "humidity",
		Timestamp: polledAt,
	}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO sensors`).
		WithArgs("row-2", "fresh", "garden", "humidity", 30, sensors[0].LastValue, sensors[0].LastPolledAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO readings`).
		WithArgs("fresh", "1", "humidity", polledAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	store := NewStore(db)
	require.NoError(t, store.SeedSensors(context.Background(), sensors, seeds))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSensorsRejectsMismatchedSeeds(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	err = store.SeedSensors(context.Background(), []models.Sensor{{SensorID: "s1"}}, nil)
	require.Error(t, err)
}
