package repository

import (
	"context"
	"database/sql"
	"errors"

	"sensorhub/internal/models"
)

// ErrSensorNotFound indicates a missing sensor row.
var ErrSensorNotFound = errors.New("sensor not found")

// SensorRepository handles persistence of physical sensors.
type SensorRepository struct {
	db *sql.DB
}

// NewSensorRepository returns repository.
func NewSensorRepository(db *sql.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

// ListAll returns the full sensor catalog in stable registration order.
func (r *SensorRepository) ListAll(ctx context.Context) ([]models.Sensor, error) {
	const query = `
		SELECT id, sensor_id, description, measurement_type, min_poll_interval_sec, last_value, last_polled_at, created_at
		FROM sensors
		ORDER BY created_at, sensor_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sensors []models.Sensor
	for rows.Next() {
		var s models.Sensor
		if err := rows.Scan(
			&s.ID,
			&s.SensorID,
			&s.Description,
			&s.MeasurementType,
			&s.MinPollIntervalSec,
			&s.LastValue,
			&s.LastPolledAt,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sensors, nil
}

// GetBySensorID returns one sensor by its external identifier.
func (r *SensorRepository) GetBySensorID(ctx context.Context, sensorID string) (*models.Sensor, error) {
	const query = `
		SELECT id, sensor_id, description, measurement_type, min_poll_interval_sec, last_value, last_polled_at, created_at
		FROM sensors
		WHERE sensor_id = $1
	`
	var s models.Sensor
	err := r.db.QueryRowContext(ctx, query, sensorID).Scan(
		&s.ID,
		&s.SensorID,
		&s.Description,
		&s.MeasurementType,
		&s.MinPollIntervalSec,
		&s.LastValue,
		&s.LastPolledAt,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSensorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
