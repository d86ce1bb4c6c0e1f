package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"sensorhub/internal/repository"
)

// NotificationsHandler lists a user's durable notifications.
type NotificationsHandler struct {
	notifications *repository.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationsHandler returns handler.
func NewNotificationsHandler(notifications *repository.NotificationRepository, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		notifications: notifications,
		logger:        logger,
	}
}

// ServeHTTP handles GET /notifications?user_id=&limit=.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.notifications.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		http.Error(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
