package models

import "time"

// UserSensor is a user's alarm subscription to a physical sensor. AlarmMin and
// AlarmMax are the personal thresholds; AlarmTriggered is the armed flag — only
// armed subscriptions are evaluated and can fire notifications. PollingInterval
// is the user's preference and is informational only: the actual poll cadence is
// governed by the sensor's own minimum interval.
type UserSensor struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	SensorID        string     `db:"sensor_id" json:"sensor_id"`
	Name            string     `db:"name" json:"name"`
	Description     string     `db:"description" json:"description"`
	AlarmMin        float64    `db:"alarm_min" json:"alarm_min"`
	AlarmMax        float64    `db:"alarm_max" json:"alarm_max"`
	AlarmTriggered  bool       `db:"alarm_triggered" json:"alarm_triggered"`
	LastValue       string     `db:"last_value" json:"last_value"`
	PollingInterval int        `db:"polling_interval" json:"polling_interval"`
	IsPublic        bool       `db:"is_public" json:"is_public"`
	Coordinates     string     `db:"coordinates" json:"coordinates"`
	IsDeleted       bool       `db:"is_deleted" json:"is_deleted"`
	DeletedAt       *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Breached reports whether the value falls outside the subscription's
// thresholds. Bounds are inclusive on both ends.
func (us *UserSensor) Breached(value float64) bool {
	return value <= us.AlarmMin || value >= us.AlarmMax
}
