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

func setupUserSensorRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *UserSensorRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewUserSensorRepository(db)
}

func userSensorRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "sensor_id", "name", "description", "alarm_min", "alarm_max",
		"alarm_triggered", "last_value", "polling_interval", "is_public", "coordinates",
		"is_deleted", "deleted_at", "created_at", "updated_at",
	}).AddRow(
		"sub-1", "alice", "s1", "garden", "", 10.0, 20.0,
		true, "15", 60, false, "42.1,23.5",
		false, nil, now, now,
	)
}

func TestListBySensorExcludesDeleted(t *testing.T) {
	db, mock, repo := setupUserSensorRepo(t)
	defer db.Close()

	mock.ExpectQuery(`FROM user_sensors\s+WHERE sensor_id = \$1 AND is_deleted = FALSE`).
		WithArgs("s1").
		WillReturnRows(userSensorRows())

	list, err := repo.ListBySensor(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].UserID)
	assert.Equal(t, 10.0, list[0].AlarmMin)
	assert.Equal(t, 20.0, list[0].AlarmMax)
	assert.True(t, list[0].AlarmTriggered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, repo := setupUserSensorRepo(t)
	defer db.Close()

	mock.ExpectQuery(`FROM user_sensors`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserSensorNotFound)
}

func TestDisableMissingSubscription(t *testing.T) {
	db, mock, repo := setupUserSensorRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE user_sensors`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Disable(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserSensorNotFound)
}

func TestRestoreClearsSoftDelete(t *testing.T) {
	db, mock, repo := setupUserSensorRepo(t)
	defer db.Close()

	mock.ExpectExec(`SET is_deleted = FALSE, deleted_at = NULL`).
		WithArgs("sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Restore(context.Background(), "sub-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNameExists(t *testing.T) {
	db, mock, repo := setupUserSensorRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("garden").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.NameExists(context.Background(), "garden")
	require.NoError(t, err)
	assert.True(t, taken)
}
