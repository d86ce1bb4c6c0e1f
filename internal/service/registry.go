package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sensorhub/internal/models"
)

// CatalogSource lists every sensor the external telemetry API exposes.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]models.Sensor, error)
}

// SensorLister loads the locally known catalog.
type SensorLister interface {
	ListAll(ctx context.Context) ([]models.Sensor, error)
}

// Seeder registers new sensors together with their initial live readings.
type Seeder interface {
	SeedSensors(ctx context.Context, sensors []models.Sensor, seeds []models.Reading) error
}

// Invalidator drops a cached catalog after a rebase changes it.
type Invalidator interface {
	Invalidate()
}

// RegistryService rebases the local sensor catalog against the external API:
// sensors the API knows and the store does not are registered, each seeded
// with a first live reading so the polling engine always finds one to
// replace. Known sensors are never modified or deleted here.
type RegistryService struct {
	source  CatalogSource
	local   SensorLister
	seeder  Seeder
	cache   Invalidator
	reading ReadingSource
	now     func() time.Time
	logger  *zap.Logger
}

// NewRegistryService returns the catalog rebase service. cache may be nil.
func NewRegistryService(source CatalogSource, local SensorLister, seeder Seeder, cache Invalidator, reading ReadingSource, now func() time.Time, logger *zap.Logger) *RegistryService {
	if now == nil {
		now = time.Now
	}
	return &RegistryService{
		source:  source,
		local:   local,
		seeder:  seeder,
		cache:   cache,
		reading: reading,
		now:     now,
		logger:  logger,
	}
}

// Rebase registers sensors present upstream but absent locally. Returns the
// number of sensors added. A sensor whose first reading cannot be fetched is
// left out of this rebase and picked up by the next one.
func (s *RegistryService) Rebase(ctx context.Context) (int, error) {
	upstream, err := s.source.FetchCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("registry: fetch upstream catalog: %w", err)
	}

	known, err := s.local.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("registry: list local catalog: %w", err)
	}
	knownIDs := make(map[string]struct{}, len(known))
	for i := range known {
		knownIDs[known[i].SensorID] = struct{}{}
	}

	var (
		added []models.Sensor
		seeds []models.Reading
	)
	for i := range upstream {
		sensor := upstream[i]
		if _, ok := knownIDs[sensor.SensorID]; ok {
			continue
		}

		first, err := s.reading.FetchReading(ctx, sensor.SensorID)
		if err != nil {
			s.logger.Warn("skipping sensor without first reading",
				zap.String("sensor_id", sensor.SensorID),
				zap.Error(err))
			continue
		}
		first.SensorID = sensor.SensorID
		first.Value = NormalizeValue(first.Value)
		if first.Timestamp.IsZero() {
			first.Timestamp = s.now().UTC()
		}

		sensor.ID = uuid.NewString()
		sensor.LastValue = &first.Value
		polledAt := first.Timestamp
		sensor.LastPolledAt = &polledAt

		added = append(added, sensor)
		seeds = append(seeds, *first)
	}

	if len(added) == 0 {
		return 0, nil
	}
	if err := s.seeder.SeedSensors(ctx, added, seeds); err != nil {
		return 0, fmt.Errorf("registry: seed sensors: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate()
	}

	s.logger.Info("catalog rebased", zap.Int("added", len(added)))
	return len(added), nil
}
