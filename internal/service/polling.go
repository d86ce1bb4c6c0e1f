package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sensorhub/internal/models"
	"sensorhub/internal/repository"
)

// Catalog provides the sensor catalog for one pass.
type Catalog interface {
	Get(ctx context.Context) ([]models.Sensor, error)
}

// ReadingSource fetches one fresh reading from the external telemetry API.
type ReadingSource interface {
	FetchReading(ctx context.Context, sensorID string) (*models.Reading, error)
}

// LiveReadings looks up the stored live reading per sensor.
type LiveReadings interface {
	GetLive(ctx context.Context, sensorID string) (*models.Reading, error)
}

// BatchStore commits all mutations of one pass atomically.
type BatchStore interface {
	CommitBatch(ctx context.Context, sensors []models.Sensor, readings []models.Reading, notifications []models.Notification) error
}

// Evaluator produces notifications for a sensor's fresh reading.
type Evaluator interface {
	Evaluate(ctx context.Context, sensor *models.Sensor, reading *models.Reading) ([]models.Notification, []Failure)
}

// LatestMirror receives the committed latest value per sensor for cheap reads.
type LatestMirror interface {
	SetLatest(ctx context.Context, reading models.Reading) error
}

// PollingService drives one polling pass: it decides which sensors are due,
// fetches and normalizes fresh readings, stages the replacement of stored
// state and hands every fresh reading to the alarm engine. Nothing is written
// until the end of the pass, so cancelling mid-pass is equivalent to not
// having run it at all. The service never self-schedules.
type PollingService struct {
	catalog      Catalog
	source       ReadingSource
	live         LiveReadings
	store        BatchStore
	alarms       Evaluator
	mirror       LatestMirror
	fetchTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewPollingService returns the polling engine. The clock is injectable for
// tests; pass nil to use the wall clock. mirror may be nil.
func NewPollingService(
	catalog Catalog,
	source ReadingSource,
	live LiveReadings,
	store BatchStore,
	alarms Evaluator,
	mirror LatestMirror,
	fetchTimeout time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) *PollingService {
	if now == nil {
		now = time.Now
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &PollingService{
		catalog:      catalog,
		source:       source,
		live:         live,
		store:        store,
		alarms:       alarms,
		mirror:       mirror,
		fetchTimeout: fetchTimeout,
		now:          now,
		logger:       logger,
	}
}

// RunPass iterates the catalog once and commits all resulting mutations as a
// single batch. Per-sensor failures are collected into the result instead of
// aborting the remaining sensors; only a missing catalog or a failed commit
// aborts the pass as a whole.
func (s *PollingService) RunPass(ctx context.Context) (*PassResult, error) {
	sensors, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	result := &PassResult{}
	var (
		updatedSensors  []models.Sensor
		updatedReadings []models.Reading
		notifications   []models.Notification
	)

	for i := range sensors {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sensor := sensors[i]
		if !sensor.Due(s.now()) {
			result.Skipped++
			continue
		}
		result.DueCount++

		stored, err := s.live.GetLive(ctx, sensor.SensorID)
		if err != nil {
			if errors.Is(err, repository.ErrNoLiveReading) {
				s.logger.Error("due sensor has no live reading", zap.String("sensor_id", sensor.SensorID))
				result.Failures = append(result.Failures, newFailure(FailureMissingReading, sensor.SensorID, err))
				continue
			}
			return nil, fmt.Errorf("polling: live reading for %s: %w", sensor.SensorID, err)
		}

		fresh, err := s.fetch(ctx, sensor.SensorID)
		if err != nil {
			s.logger.Warn("fetch failed", zap.String("sensor_id", sensor.SensorID), zap.Error(err))
			result.Failures = append(result.Failures, newFailure(FailureFetch, sensor.SensorID, err))
			continue
		}

		// The source may not echo the identifier back reliably.
		fresh.SensorID = sensor.SensorID
		fresh.Value = NormalizeValue(fresh.Value)

		// Replace the stored reading in place: same row, fresh value and
		// timestamp, so exactly one live reading survives the commit.
		replacement := *stored
		replacement.Value = fresh.Value
		replacement.Timestamp = fresh.Timestamp
		if fresh.ValueType != "" {
			replacement.ValueType = fresh.ValueType
		}

		sensor.LastValue = &replacement.Value
		polledAt := replacement.Timestamp
		sensor.LastPolledAt = &polledAt

		updatedSensors = append(updatedSensors, sensor)
		updatedReadings = append(updatedReadings, replacement)
		result.Polled++

		fired, failures := s.alarms.Evaluate(ctx, &sensor, &replacement)
		notifications = append(notifications, fired...)
		result.Failures = append(result.Failures, failures...)
	}

	if err := s.store.CommitBatch(ctx, updatedSensors, updatedReadings, notifications); err != nil {
		return nil, fmt.Errorf("polling: commit pass: %w", err)
	}
	result.Notifications = len(notifications)

	s.mirrorLatest(ctx, updatedReadings)

	s.logger.Info("polling pass complete",
		zap.Int("due", result.DueCount),
		zap.Int("polled", result.Polled),
		zap.Int("skipped", result.Skipped),
		zap.Int("notifications", result.Notifications),
		zap.Int("failures", len(result.Failures)))
	return result, nil
}

func (s *PollingService) fetch(ctx context.Context, sensorID string) (*models.Reading, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return s.source.FetchReading(fetchCtx, sensorID)
}

// mirrorLatest is best-effort: the durable store already committed.
func (s *PollingService) mirrorLatest(ctx context.Context, readings []models.Reading) {
	if s.mirror == nil {
		return
	}
	for i := range readings {
		if err := s.mirror.SetLatest(ctx, readings[i]); err != nil {
			s.logger.Warn("latest-value mirror update failed",
				zap.String("sensor_id", readings[i].SensorID),
				zap.Error(err))
		}
	}
}
