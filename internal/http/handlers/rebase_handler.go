package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"sensorhub/internal/service"
)

// RebaseHandler triggers a catalog rebase against the external API.
type RebaseHandler struct {
	registry *service.RegistryService
	logger   *zap.Logger
}

// NewRebaseHandler returns handler.
func NewRebaseHandler(registry *service.RegistryService, logger *zap.Logger) *RebaseHandler {
	return &RebaseHandler{
		registry: registry,
		logger:   logger,
	}
}

// ServeHTTP handles POST /internal/sensors/rebase.
func (h *RebaseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	added, err := h.registry.Rebase(r.Context())
	if err != nil {
		h.logger.Error("catalog rebase failed", zap.Error(err))
		http.Error(w, "catalog rebase failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"added":%d}`, added)
}
