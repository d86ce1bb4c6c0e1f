package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sensorhub/internal/notify"
)

// AlertsHandler upgrades HTTP connections to WebSockets for alert push.
type AlertsHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewAlertsHandler returns handler.
func NewAlertsHandler(hub *notify.Hub, logger *zap.Logger) *AlertsHandler {
	return &AlertsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP handles GET /ws/alerts?user_id=.
func (h *AlertsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	conn := notify.NewConnection(uuid.NewString(), userID, ws, 10*time.Second, h.logger, h.hub.Remove)
	h.hub.Add(conn)
	h.logger.Info("alert connection opened", zap.String("user_id", userID))

	conn.Start(r.Context())
}
