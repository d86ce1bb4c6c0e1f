package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sensorhub/internal/models"
)

// LatestValue mirrors one sensor's committed live reading for cheap reads.
type LatestValue struct {
	SensorID  string    `json:"sensor_id"`
	Value     string    `json:"value"`
	ValueType string    `json:"value_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Store mirrors the latest committed value per sensor into Redis. The durable
// store remains the source of truth; this cache only serves dashboards.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed latest-value mirror.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(sensorID string) string {
	return fmt.Sprintf("sensors:latest:%s", sensorID)
}

// SetLatest overwrites the mirrored value for a sensor.
func (s *Store) SetLatest(ctx context.Context, reading models.Reading) error {
	data, err := json.Marshal(LatestValue{
		SensorID:  reading.SensorID,
		Value:     reading.Value,
		ValueType: reading.ValueType,
		Timestamp: reading.Timestamp,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(reading.SensorID), data, s.ttl).Err()
}

// GetLatest returns the mirrored value for a sensor.
func (s *Store) GetLatest(ctx context.Context, sensorID string) (*LatestValue, error) {
	result, err := s.client.Get(ctx, s.key(sensorID)).Result()
	if err != nil {
		return nil, err
	}
	var latest LatestValue
	if err := json.Unmarshal([]byte(result), &latest); err != nil {
		return nil, err
	}
	return &latest, nil
}

// Delete removes the mirrored value.
func (s *Store) Delete(ctx context.Context, sensorID string) error {
	return s.client.Del(ctx, s.key(sensorID)).Err()
}
