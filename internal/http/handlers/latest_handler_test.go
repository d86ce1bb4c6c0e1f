package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sensorhub/internal/models"
	"sensorhub/internal/redisstore"
	"sensorhub/internal/repository"
)

func TestLatestServedFromMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mirror := redisstore.NewStore(client, time.Minute)

	err := mirror.SetLatest(context.Background(), models.Reading{
		SensorID:  "s-1",
		Value:     "21.5",
		ValueType: "temperature",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	handler := NewLatestHandler(mirror, nil, zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/sensors/s-1/latest", nil))

	require.Equal(t, 200, rec.Code)
	var latest redisstore.LatestValue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	require.Equal(t, "21.5", latest.Value)
	require.Equal(t, "s-1", latest.SensorID)
}

func TestLatestFallsBackToStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mirror := redisstore.NewStore(client, time.Minute)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, sensor_id, value, value_type, timestamp`).
		WithArgs("s-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sensor_id", "value", "value_type", "timestamp"}).
			AddRow(int64(7), "s-2", "1", "door", ts))

	handler := NewLatestHandler(mirror, repository.NewReadingRepository(db), zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/sensors/s-2/latest", nil))

	require.Equal(t, 200, rec.Code)
	var latest redisstore.LatestValue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	require.Equal(t, "1", latest.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestMissingEverywhere(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, sensor_id, value, value_type, timestamp`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	handler := NewLatestHandler(nil, repository.NewReadingRepository(db), zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/sensors/ghost/latest", nil))

	require.Equal(t, 404, rec.Code)
}

func TestLatestRejectsMalformedPath(t *testing.T) {
	handler := NewLatestHandler(nil, nil, zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/sensors/s-1", nil))
	require.Equal(t, 404, rec.Code)
}
