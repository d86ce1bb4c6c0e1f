package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sensorhub/internal/models"
	"sensorhub/internal/repository"
)

// ErrInvalidSubscription indicates rejected subscription input.
var ErrInvalidSubscription = errors.New("invalid subscription")

// UserSensorInput is the payload for creating or updating a subscription.
type UserSensorInput struct {
	UserID          string  `json:"user_id"`
	SensorID        string  `json:"sensor_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Latitude        string  `json:"latitude"`
	Longitude       string  `json:"longitude"`
	AlarmMin        float64 `json:"alarm_min"`
	AlarmMax        float64 `json:"alarm_max"`
	AlarmTriggered  bool    `json:"alarm_triggered"`
	PollingInterval int     `json:"polling_interval"`
	IsPublic        bool    `json:"is_public"`
}

// UserSensorService manages user alarm subscriptions.
type UserSensorService struct {
	subscriptions *repository.UserSensorRepository
	sensors       *repository.SensorRepository
	logger        *zap.Logger
}

// NewUserSensorService returns service instance.
func NewUserSensorService(subscriptions *repository.UserSensorRepository, sensors *repository.SensorRepository, logger *zap.Logger) *UserSensorService {
	return &UserSensorService{
		subscriptions: subscriptions,
		sensors:       sensors,
		logger:        logger,
	}
}

// Create registers a new subscription to a cataloged sensor.
func (s *UserSensorService) Create(ctx context.Context, input UserSensorInput) (*models.UserSensor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidSubscription)
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidSubscription)
	}

	taken, err := s.subscriptions.NameExists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrUserSensorNameTaken
	}

	sensor, err := s.sensors.GetBySensorID(ctx, input.SensorID)
	if err != nil {
		return nil, err
	}

	lastValue := ""
	if sensor.LastValue != nil {
		lastValue = *sensor.LastValue
	}

	subscription := &models.UserSensor{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		SensorID:        sensor.SensorID,
		Name:            input.Name,
		Description:     input.Description,
		AlarmMin:        input.AlarmMin,
		AlarmMax:        input.AlarmMax,
		AlarmTriggered:  input.AlarmTriggered,
		LastValue:       lastValue,
		PollingInterval: input.PollingInterval,
		IsPublic:        input.IsPublic,
		Coordinates:     input.Latitude + "," + input.Longitude,
	}
	if err := s.subscriptions.Create(ctx, subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

// Update overwrites subscription settings.
func (s *UserSensorService) Update(ctx context.Context, subscription *models.UserSensor) error {
	if subscription == nil {
		return fmt.Errorf("%w: nil subscription", ErrInvalidSubscription)
	}
	return s.subscriptions.Update(ctx, subscription)
}

// Disable soft-deletes a subscription; it is no longer evaluated.
func (s *UserSensorService) Disable(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed id %q", ErrInvalidSubscription, id)
	}
	return s.subscriptions.Disable(ctx, id)
}

// Restore brings a soft-deleted subscription back.
func (s *UserSensorService) Restore(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed id %q", ErrInvalidSubscription, id)
	}
	return s.subscriptions.Restore(ctx, id)
}

// Get returns one subscription by ID.
func (s *UserSensorService) Get(ctx context.Context, id string) (*models.UserSensor, error) {
	return s.subscriptions.GetByID(ctx, id)
}

// ListByUser returns the active subscriptions of one user.
func (s *UserSensorService) ListByUser(ctx context.Context, userID string) ([]models.UserSensor, error) {
	return s.subscriptions.ListByUser(ctx, userID)
}

// ListPublic returns all active public subscriptions.
func (s *UserSensorService) ListPublic(ctx context.Context) ([]models.UserSensor, error) {
	return s.subscriptions.ListPublic(ctx)
}
