package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSensorDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	never := Sensor{SensorID: "s1", MinPollIntervalSec: 3600}
	assert.True(t, never.Due(now), "never-polled sensor is always due")

	polled := func(ago time.Duration) *Sensor {
		at := now.Add(-ago)
		return &Sensor{SensorID: "s1", MinPollIntervalSec: 60, LastPolledAt: &at}
	}

	assert.False(t, polled(59*time.Second).Due(now))
	assert.True(t, polled(60*time.Second).Due(now), "elapsed equal to the interval is due")
	assert.True(t, polled(61*time.Second).Due(now))
}

func TestUserSensorBreached(t *testing.T) {
	sub := UserSensor{AlarmMin: 10, AlarmMax: 20}

	assert.True(t, sub.Breached(5))
	assert.True(t, sub.Breached(10), "lower bound is inclusive")
	assert.False(t, sub.Breached(15))
	assert.True(t, sub.Breached(20), "upper bound is inclusive")
	assert.True(t, sub.Breached(25))
}
