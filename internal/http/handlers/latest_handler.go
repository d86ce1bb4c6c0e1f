package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sensorhub/internal/redisstore"
	"sensorhub/internal/repository"
)

// LatestHandler serves the last committed value of a sensor. It reads the
// Redis mirror first and falls back to the durable store on a miss.
type LatestHandler struct {
	mirror   *redisstore.Store
	readings *repository.ReadingRepository
	logger   *zap.Logger
}

// NewLatestHandler returns handler. mirror may be nil when Redis is not configured.
func NewLatestHandler(mirror *redisstore.Store, readings *repository.ReadingRepository, logger *zap.Logger) *LatestHandler {
	return &LatestHandler{
		mirror:   mirror,
		readings: readings,
		logger:   logger,
	}
}

// ServeHTTP handles GET /sensors/{sensorID}/latest.
func (h *LatestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sensors/")
	sensorID := strings.TrimSuffix(rest, "/latest")
	if sensorID == "" || sensorID == rest {
		http.NotFound(w, r)
		return
	}

	if h.mirror != nil {
		latest, err := h.mirror.GetLatest(r.Context(), sensorID)
		if err == nil {
			writeJSON(w, latest)
			return
		}
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("latest-value mirror read failed", zap.String("sensor_id", sensorID), zap.Error(err))
		}
	}

	reading, err := h.readings.GetLive(r.Context(), sensorID)
	if err != nil {
		if errors.Is(err, repository.ErrNoLiveReading) {
			http.Error(w, "no live reading for sensor", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to read live value", zap.String("sensor_id", sensorID), zap.Error(err))
		http.Error(w, "failed to read live value", http.StatusInternalServerError)
		return
	}
	writeJSON(w, redisstore.LatestValue{
		SensorID:  reading.SensorID,
		Value:     reading.Value,
		ValueType: reading.ValueType,
		Timestamp: reading.Timestamp,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
