package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sensorhub/internal/models"
)

// Store commits the mutations produced by one polling pass as a single
// transaction. Either every staged sensor update, reading replacement and
// notification persists, or none do — a sensor must never end up marked
// freshly polled without its stored reading.
type Store struct {
	db *sql.DB
}

// NewStore returns the batch commit store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CommitBatch applies all staged mutations atomically. A pass that staged
// nothing commits nothing.
func (s *Store) CommitBatch(ctx context.Context, sensors []models.Sensor, readings []models.Reading, notifications []models.Notification) error {
	if len(sensors) == 0 && len(readings) == 0 && len(notifications) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	const updateSensor = `
		UPDATE sensors
		SET last_value = $2, last_polled_at = $3
		WHERE sensor_id = $1
	`
	for i := range sensors {
		sensor := &sensors[i]
		if _, err := tx.ExecContext(ctx, updateSensor, sensor.SensorID, sensor.LastValue, sensor.LastPolledAt); err != nil {
			return fmt.Errorf("store: update sensor %s: %w", sensor.SensorID, err)
		}
	}

	// Overwrite in place so exactly one live row per sensor survives the pass.
	const updateReading = `
		UPDATE readings
		SET value = $2, value_type = $3, timestamp = $4
		WHERE sensor_id = $1
	`
	for i := range readings {
		reading := &readings[i]
		if _, err := tx.ExecContext(ctx, updateReading, reading.SensorID, reading.Value, reading.ValueType, reading.Timestamp); err != nil {
			return fmt.Errorf("store: replace reading %s: %w", reading.SensorID, err)
		}
	}

	const insertNotification = `
		INSERT INTO notifications (id, user_id, message, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	for i := range notifications {
		n := &notifications[i]
		if _, err := tx.ExecContext(ctx, insertNotification, n.ID, n.UserID, n.Message); err != nil {
			return fmt.Errorf("store: insert notification for %s: %w", n.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// SeedSensors registers sensors discovered during a catalog rebase. Each new
// sensor is inserted together with its initial live reading in one transaction,
// so a cataloged sensor can never exist without a reading to replace.
func (s *Store) SeedSensors(ctx context.Context, sensors []models.Sensor, seeds []models.Reading) error {
	if len(sensors) != len(seeds) {
		return fmt.Errorf("store: %d sensors with %d seed readings", len(sensors), len(seeds))
	}
	if len(sensors) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	const insertSensor = `
		INSERT INTO sensors (id, sensor_id, description, measurement_type, min_poll_interval_sec, last_value, last_polled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (sensor_id) DO NOTHING
	`
	const insertReading = `
		INSERT INTO readings (sensor_id, value, value_type, timestamp)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sensor_id) DO NOTHING
	`
	for i := range sensors {
		sensor := &sensors[i]
		if _, err := tx.ExecContext(ctx, insertSensor,
			sensor.ID,
			sensor.SensorID,
			sensor.Description,
			sensor.MeasurementType,
			sensor.MinPollIntervalSec,
			sensor.LastValue,
			sensor.LastPolledAt,
		); err != nil {
			return fmt.Errorf("store: insert sensor %s: %w", sensor.SensorID, err)
		}
		seed := &seeds[i]
		if _, err := tx.ExecContext(ctx, insertReading, seed.SensorID, seed.Value, seed.ValueType, seed.Timestamp); err != nil {
			return fmt.Errorf("store: seed reading %s: %w", seed.SensorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
