package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sensorhub/internal/repository"
	"sensorhub/internal/service"
)

// SubscriptionsHandler manages user alarm subscriptions.
type SubscriptionsHandler struct {
	subscriptions *service.UserSensorService
	logger        *zap.Logger
}

// NewSubscriptionsHandler returns handler.
func NewSubscriptionsHandler(subscriptions *service.UserSensorService, logger *zap.Logger) *SubscriptionsHandler {
	return &SubscriptionsHandler{
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// ServeHTTP routes /subscriptions requests.
func (h *SubscriptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/subscriptions"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case rest == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.get(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodPut:
		h.update(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.disable(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "restore" && r.Method == http.MethodPost:
		h.restore(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *SubscriptionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var input service.UserSensorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	subscription, err := h.subscriptions.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSubscription):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrUserSensorNameTaken):
			http.Error(w, "subscription name already exists", http.StatusConflict)
		case errors.Is(err, repository.ErrSensorNotFound):
			http.Error(w, "unknown sensor", http.StatusNotFound)
		default:
			h.logger.Error("failed to create subscription", zap.Error(err))
			http.Error(w, "failed to create subscription", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(subscription)
}

func (h *SubscriptionsHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		list any
		err  error
	)
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		list, err = h.subscriptions.ListByUser(r.Context(), userID)
	} else {
		list, err = h.subscriptions.ListPublic(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list subscriptions", zap.Error(err))
		http.Error(w, "failed to list subscriptions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *SubscriptionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	subscription, err := h.subscriptions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserSensorNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load subscription", zap.Error(err))
		http.Error(w, "failed to load subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(subscription)
}

func (h *SubscriptionsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var input service.UserSensorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	subscription, err := h.subscriptions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserSensorNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load subscription", zap.Error(err))
		http.Error(w, "failed to load subscription", http.StatusInternalServerError)
		return
	}

	subscription.Name = input.Name
	subscription.Description = input.Description
	subscription.AlarmMin = input.AlarmMin
	subscription.AlarmMax = input.AlarmMax
	subscription.AlarmTriggered = input.AlarmTriggered
	subscription.PollingInterval = input.PollingInterval
	subscription.IsPublic = input.IsPublic
	if input.Latitude != "" || input.Longitude != "" {
		subscription.Coordinates = input.Latitude + "," + input.Longitude
	}

	if err := h.subscriptions.Update(r.Context(), subscription); err != nil {
		h.writeMutationError(w, r, err, "failed to update subscription")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(subscription)
}

func (h *SubscriptionsHandler) disable(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.subscriptions.Disable(r.Context(), id); err != nil {
		h.writeMutationError(w, r, err, "failed to disable subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubscriptionsHandler) restore(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.subscriptions.Restore(r.Context(), id); err != nil {
		h.writeMutationError(w, r, err, "failed to restore subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubscriptionsHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidSubscription):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrUserSensorNotFound):
		http.NotFound(w, r)
	default:
		h.logger.Error(msg, zap.Error(err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
