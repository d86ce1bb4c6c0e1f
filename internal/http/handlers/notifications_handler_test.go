package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sensorhub/internal/models"
	"sensorhub/internal/repository"
)

func TestNotificationsListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, user_id, message, created_at`).
		WithArgs("u-1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "message", "created_at"}).
			AddRow("n-1", "u-1", "Hall temperature is out of bounds: 42", created))

	handler := NewNotificationsHandler(repository.NewNotificationRepository(db), zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/notifications?user_id=u-1", nil))

	require.Equal(t, 200, rec.Code)
	var list []models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "u-1", list[0].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRequireUser(t *testing.T) {
	handler := NewNotificationsHandler(nil, zap.NewNop())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/notifications", nil))
	require.Equal(t, 400, rec.Code)
}
