package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AlertChannel returns the pub/sub channel carrying one user's alerts.
func AlertChannel(userID string) string {
	return "alerts:" + userID
}

// Alert is the transient payload pushed to clients.
type Alert struct {
	UserID  string    `json:"user_id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// Dispatcher delivers transient alerts: directly over the local WebSocket hub
// and through a Redis channel so instances not holding the user's connection
// can deliver too. Delivery is best-effort — persistence of the durable
// notification record happens elsewhere and never waits on this.
type Dispatcher struct {
	hub    *Hub
	rdb    *redis.Client
	now    func() time.Time
	logger *zap.Logger
}

// NewDispatcher returns dispatcher. rdb may be nil when running without Redis.
func NewDispatcher(hub *Hub, rdb *redis.Client, now func() time.Time, logger *zap.Logger) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		hub:    hub,
		rdb:    rdb,
		now:    now,
		logger: logger,
	}
}

// Send pushes one alert to the user.
func (d *Dispatcher) Send(ctx context.Context, userID, message string) error {
	payload, err := json.Marshal(Alert{
		UserID:  userID,
		Message: message,
		SentAt:  d.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: encode alert: %w", err)
	}

	delivered := d.hub.Push(userID, payload)

	if d.rdb != nil {
		if err := d.rdb.Publish(ctx, AlertChannel(userID), payload).Err(); err != nil {
			if delivered == 0 {
				return fmt.Errorf("notify: publish alert: %w", err)
			}
			d.logger.Warn("alert publish failed, delivered locally only",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	d.logger.Debug("alert dispatched",
		zap.String("user_id", userID),
		zap.Int("local_connections", delivered))
	return nil
}
