package service

import "errors"

// ErrCatalogUnavailable aborts a whole pass: with no catalog nothing is due.
var ErrCatalogUnavailable = errors.New("sensor catalog unavailable")

// FailureKind classifies per-sensor failures collected during a pass.
type FailureKind string

const (
	// FailureFetch means the external source errored or timed out; the
	// sensor is skipped for this pass and retried on the next one.
	FailureFetch FailureKind = "fetch_failed"
	// FailureMissingReading means a due sensor has no stored live reading.
	// That is a data-integrity violation: the reading is never synthesized.
	FailureMissingReading FailureKind = "missing_live_reading"
	// FailureInvalidFormat means the sensor carries numeric alarms but its
	// value is not a decimal; polling of the raw value still succeeds.
	FailureInvalidFormat FailureKind = "invalid_reading_format"
	// FailureBindings means the subscriptions for a sensor could not be
	// listed, so its alarms went unevaluated this pass.
	FailureBindings FailureKind = "bindings_unavailable"
	// FailureDelivery means the transient alert could not be delivered;
	// the durable notification record is persisted regardless.
	FailureDelivery FailureKind = "notification_delivery_failed"
)

// Failure reports one isolated failure from a polling pass. A failure never
// aborts the pass; the remaining sensors are still processed.
type Failure struct {
	Kind     FailureKind `json:"kind"`
	SensorID string      `json:"sensor_id,omitempty"`
	UserID   string      `json:"user_id,omitempty"`
	Reason   string      `json:"reason"`
}

func newFailure(kind FailureKind, sensorID string, err error) Failure {
	return Failure{Kind: kind, SensorID: sensorID, Reason: err.Error()}
}

// PassResult summarizes one full iteration over the sensor catalog. Raw
// collaborator errors never reach end users; this is the structured report
// handed to observability callers instead.
type PassResult struct {
	DueCount      int       `json:"due_count"`
	Polled        int       `json:"polled"`
	Skipped       int       `json:"skipped"`
	Notifications int       `json:"notifications"`
	Failures      []Failure `json:"failures,omitempty"`
}
