package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sensorhub/internal/models"
)

// BindingLister returns the active alarm subscriptions for one sensor.
type BindingLister interface {
	ListBySensor(ctx context.Context, sensorID string) ([]models.UserSensor, error)
}

// Sink delivers a transient alert to a user. Best-effort: a delivery failure
// must not block persisting the durable notification record.
type Sink interface {
	Send(ctx context.Context, userID, message string) error
}

// AlarmService evaluates user alarm subscriptions against fresh readings.
type AlarmService struct {
	bindings BindingLister
	sink     Sink
	logger   *zap.Logger
}

// NewAlarmService returns the alarm evaluation engine.
func NewAlarmService(bindings BindingLister, sink Sink, logger *zap.Logger) *AlarmService {
	return &AlarmService{
		bindings: bindings,
		sink:     sink,
		logger:   logger,
	}
}

// Evaluate checks every armed subscription bound to the sensor against the
// new reading and returns one notification per breached threshold. Bounds are
// inclusive: value <= min or value >= max fires. There is no cooldown — a
// subscription that stays armed and breached re-fires on every due pass.
func (s *AlarmService) Evaluate(ctx context.Context, sensor *models.Sensor, reading *models.Reading) ([]models.Notification, []Failure) {
	value, err := strconv.ParseFloat(reading.Value, 64)
	if err != nil {
		return nil, []Failure{newFailure(FailureInvalidFormat, sensor.SensorID, fmt.Errorf("non-numeric value %q", reading.Value))}
	}

	subscriptions, err := s.bindings.ListBySensor(ctx, sensor.SensorID)
	if err != nil {
		return nil, []Failure{newFailure(FailureBindings, sensor.SensorID, err)}
	}

	var (
		notifications []models.Notification
		failures      []Failure
	)
	for i := range subscriptions {
		sub := &subscriptions[i]
		if !sub.AlarmTriggered || !sub.Breached(value) {
			continue
		}

		notification := models.Notification{
			ID:      uuid.NewString(),
			UserID:  sub.UserID,
			Message: fmt.Sprintf("Alarm %q: sensor value %s is outside thresholds [%g, %g]", sub.Name, reading.Value, sub.AlarmMin, sub.AlarmMax),
		}

		if err := s.sink.Send(ctx, notification.UserID, notification.Message); err != nil {
			s.logger.Warn("alert delivery failed",
				zap.String("user_id", notification.UserID),
				zap.String("sensor_id", sensor.SensorID),
				zap.Error(err))
			failures = append(failures, Failure{
				Kind:   FailureDelivery,
				UserID: notification.UserID,
				Reason: err.Error(),
			})
		}

		// Persisted even when delivery failed.
		notifications = append(notifications, notification)
	}
	return notifications, failures
}
