package models

import "time"

// Reading is the single most-recent value observed for one sensor. The store
// keeps exactly one live reading per sensor; a new reading replaces the prior
// one instead of accumulating history.
type Reading struct {
	ID        int64     `db:"id" json:"id"`
	SensorID  string    `db:"sensor_id" json:"sensor_id"`
	Value     string    `db:"value" json:"value"`
	ValueType string    `db:"value_type" json:"value_type"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
