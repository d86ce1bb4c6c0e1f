package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sensorhub/internal/models"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TelemetryClient talks to the external telemetry API. It returns one current
// reading per sensor; values arrive as decimal strings or the literal tokens
// "true"/"false" — normalization is the polling engine's job, not the client's.
type TelemetryClient struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewTelemetryClient builds client with base URL and optional API key.
func NewTelemetryClient(baseURL, apiKey string, client HTTPDoer) *TelemetryClient {
	return &TelemetryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// FetchReading returns the current reading for one sensor.
func (c *TelemetryClient) FetchReading(ctx context.Context, sensorID string) (*models.Reading, error) {
	var payload struct {
		SensorID  string    `json:"sensorId"`
		Value     string    `json:"value"`
		ValueType string    `json:"valueType"`
		Timestamp time.Time `json:"timeStamp"`
	}
	if err := c.getJSON(ctx, "/api/sensors/"+sensorID+"/data", &payload); err != nil {
		return nil, err
	}
	return &models.Reading{
		SensorID:  payload.SensorID,
		Value:     payload.Value,
		ValueType: payload.ValueType,
		Timestamp: payload.Timestamp,
	}, nil
}

// FetchCatalog returns every sensor the external API knows about.
func (c *TelemetryClient) FetchCatalog(ctx context.Context) ([]models.Sensor, error) {
	var payload []struct {
		SensorID           string `json:"sensorId"`
		Description        string `json:"description"`
		MeasurementType    string `json:"measureType"`
		MinPollIntervalSec int    `json:"minPollingIntervalInSeconds"`
	}
	if err := c.getJSON(ctx, "/api/sensors/all", &payload); err != nil {
		return nil, err
	}

	sensors := make([]models.Sensor, 0, len(payload))
	for _, p := range payload {
		sensors = append(sensors, models.Sensor{
			SensorID:           p.SensorID,
			Description:        p.Description,
			MeasurementType:    p.MeasurementType,
			MinPollIntervalSec: p.MinPollIntervalSec,
		})
	}
	return sensors, nil
}

func (c *TelemetryClient) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("auth-token", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telemetry api: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("telemetry api: decode %s: %w", path, err)
	}
	return nil
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
