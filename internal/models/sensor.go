package models

import "time"

// Sensor represents one physical telemetry-producing device known to the system.
// SensorID is the opaque identifier assigned by the external telemetry API and is
// unique across all sensors. LastValue and LastPolledAt are denormalized copies of
// the live reading and are always updated together.
type Sensor struct {
	ID                 string     `db:"id" json:"id"`
	SensorID           string     `db:"sensor_id" json:"sensor_id"`
	Description        string     `db:"description" json:"description"`
	MeasurementType    string     `db:"measurement_type" json:"measurement_type"`
	MinPollIntervalSec int        `db:"min_poll_interval_sec" json:"min_poll_interval_sec"`
	LastValue          *string    `db:"last_value" json:"last_value,omitempty"`
	LastPolledAt       *time.Time `db:"last_polled_at" json:"last_polled_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// Due reports whether the sensor should be polled again at the given instant.
// A sensor that has never been polled is always due.
func (s *Sensor) Due(now time.Time) bool {
	if s.LastPolledAt == nil {
		return true
	}
	return now.Sub(*s.LastPolledAt).Seconds() >= float64(s.MinPollIntervalSec)
}
