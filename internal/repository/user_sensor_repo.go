package repository

import (
	"context"
	"database/sql"
	"errors"

	"sensorhub/internal/models"
)

// ErrUserSensorNotFound indicates a missing subscription.
var ErrUserSensorNotFound = errors.New("user sensor not found")

// ErrUserSensorNameTaken indicates a duplicate subscription name.
var ErrUserSensorNameTaken = errors.New("user sensor name already exists")

const userSensorColumns = `id, user_id, sensor_id, name, description, alarm_min, alarm_max, alarm_triggered, last_value, polling_interval, is_public, coordinates, is_deleted, deleted_at, created_at, updated_at`

// UserSensorRepository handles persistence of user alarm subscriptions.
type UserSensorRepository struct {
	db *sql.DB
}

// NewUserSensorRepository returns repository.
func NewUserSensorRepository(db *sql.DB) *UserSensorRepository {
	return &UserSensorRepository{db: db}
}

func scanUserSensor(row interface{ Scan(...any) error }, us *models.UserSensor) error {
	return row.Scan(
		&us.ID,
		&us.UserID,
		&us.SensorID,
		&us.Name,
		&us.Description,
		&us.AlarmMin,
		&us.AlarmMax,
		&us.AlarmTriggered,
		&us.LastValue,
		&us.PollingInterval,
		&us.IsPublic,
		&us.Coordinates,
		&us.IsDeleted,
		&us.DeletedAt,
		&us.CreatedAt,
		&us.UpdatedAt,
	)
}

func (r *UserSensorRepository) queryList(ctx context.Context, query string, args ...any) ([]models.UserSensor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.UserSensor
	for rows.Next() {
		var us models.UserSensor
		if err := scanUserSensor(rows, &us); err != nil {
			return nil, err
		}
		list = append(list, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListBySensor returns active subscriptions referencing one physical sensor.
// Soft-deleted subscriptions are excluded and are never evaluated.
func (r *UserSensorRepository) ListBySensor(ctx context.Context, sensorID string) ([]models.UserSensor, error) {
	const query = `
		SELECT ` + userSensorColumns + `
		FROM user_sensors
		WHERE sensor_id = $1 AND is_deleted = FALSE
		ORDER BY created_at
	`
	return r.queryList(ctx, query, sensorID)
}

// ListByUser returns active subscriptions owned by one user.
func (r *UserSensorRepository) ListByUser(ctx context.Context, userID string) ([]models.UserSensor, error) {
	const query = `
		SELECT ` + userSensorColumns + `
		FROM user_sensors
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at
	`
	return r.queryList(ctx, query, userID)
}

// ListPublic returns active publicly visible subscriptions.
func (r *UserSensorRepository) ListPublic(ctx context.Context) ([]models.UserSensor, error) {
	const query = `
		SELECT ` + userSensorColumns + `
		FROM user_sensors
		WHERE is_public = TRUE AND is_deleted = FALSE
		ORDER BY created_at
	`
	return r.queryList(ctx, query)
}

// GetByID returns one subscription regardless of deletion state.
func (r *UserSensorRepository) GetByID(ctx context.Context, id string) (*models.UserSensor, error) {
	const query = `
		SELECT ` + userSensorColumns + `
		FROM user_sensors
		WHERE id = $1
	`
	var us models.UserSensor
	err := scanUserSensor(r.db.QueryRowContext(ctx, query, id), &us)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserSensorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &us, nil
}

// NameExists reports whether any subscription already uses the given name.
func (r *UserSensorRepository) NameExists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_sensors WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new subscription.
func (r *UserSensorRepository) Create(ctx context.Context, us *models.UserSensor) error {
	const query = `
		INSERT INTO user_sensors (id, user_id, sensor_id, name, description, alarm_min, alarm_max, alarm_triggered, last_value, polling_interval, is_public, coordinates, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		us.ID,
		us.UserID,
		us.SensorID,
		us.Name,
		us.Description,
		us.AlarmMin,
		us.AlarmMax,
		us.AlarmTriggered,
		us.LastValue,
		us.PollingInterval,
		us.IsPublic,
		us.Coordinates,
	).Scan(&us.CreatedAt, &us.UpdatedAt)
}

// Update overwrites mutable subscription fields.
func (r *UserSensorRepository) Update(ctx context.Context, us *models.UserSensor) error {
	const query = `
		UPDATE user_sensors
		SET name = $2,
		    description = $3,
		    alarm_min = $4,
		    alarm_max = $5,
		    alarm_triggered = $6,
		    polling_interval = $7,
		    is_public = $8,
		    coordinates = $9,
		    updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, us.ID, us.Name, us.Description, us.AlarmMin, us.AlarmMax, us.AlarmTriggered, us.PollingInterval, us.IsPublic, us.Coordinates)
}

// Disable soft-deletes a subscription.
func (r *UserSensorRepository) Disable(ctx context.Context, id string) error {
	const query = `
		UPDATE user_sensors
		SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id)
}

// Restore clears the soft-delete flag.
func (r *UserSensorRepository) Restore(ctx context.Context, id string) error {
	const query = `
		UPDATE user_sensors
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id)
}

func (r *UserSensorRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSensorNotFound
	}
	return nil
}
