package repository

import (
	"context"
	"database/sql"
	"errors"

	"sensorhub/internal/models"
)

// ErrNoLiveReading indicates a cataloged sensor without a stored reading.
// Every sensor gets a seeded reading at registration, so hitting this is a
// data-integrity violation, not a normal empty-cache miss.
var ErrNoLiveReading = errors.New("no live reading for sensor")

// ReadingRepository holds the single live reading per sensor.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository returns repository.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// GetLive returns the live reading for a sensor.
func (r *ReadingRepository) GetLive(ctx context.Context, sensorID string) (*models.Reading, error) {
	const query = `
		SELECT id, sensor_id, value, value_type, timestamp
		FROM readings
		WHERE sensor_id = $1
	`
	var rd models.Reading
	err := r.db.QueryRowContext(ctx, query, sensorID).Scan(
		&rd.ID,
		&rd.SensorID,
		&rd.Value,
		&rd.ValueType,
		&rd.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoLiveReading
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}
