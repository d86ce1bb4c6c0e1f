package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"sensorhub/internal/service"
)

// PollingHandler triggers one polling pass on demand.
type PollingHandler struct {
	polling *service.PollingService
	logger  *zap.Logger
}

// NewPollingHandler returns handler.
func NewPollingHandler(polling *service.PollingService, logger *zap.Logger) *PollingHandler {
	return &PollingHandler{
		polling: polling,
		logger:  logger,
	}
}

// ServeHTTP handles POST /internal/polling/run.
func (h *PollingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.polling.RunPass(r.Context())
	if err != nil {
		h.logger.Error("polling pass failed", zap.Error(err))
		if errors.Is(err, service.ErrCatalogUnavailable) {
			http.Error(w, "sensor catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "polling pass failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Warn("failed to encode pass result", zap.Error(err))
	}
}
