package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLiveReading(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM readings\s+WHERE sensor_id = \$1`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sensor_id", "value", "value_type", "timestamp"}).
			AddRow(int64(7), "s1", "21.5", "temperature", ts))

	repo := NewReadingRepository(db)
	reading, err := repo.GetLive(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reading.ID)
	assert.Equal(t, "21.5", reading.Value)
	assert.True(t, reading.Timestamp.Equal(ts))
}

func TestGetLiveReadingMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM readings`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := NewReadingRepository(db)
	_, err = repo.GetLive(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoLiveReading)
}
