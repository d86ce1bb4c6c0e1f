package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sensors/s1/data", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("auth-token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sensorId":"s1","value":"true","valueType":"switch","timeStamp":"2024-03-01T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, "secret", server.Client())
	reading, err := client.FetchReading(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", reading.SensorID)
	assert.Equal(t, "true", reading.Value, "client passes raw values through untouched")
	assert.Equal(t, "switch", reading.ValueType)
	assert.True(t, reading.Timestamp.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestFetchReadingUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, "", server.Client())
	_, err := client.FetchReading(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sensors/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"sensorId":"s1","description":"garden","measureType":"humidity","minPollingIntervalInSeconds":30},
			{"sensorId":"s2","description":"door","measureType":"switch","minPollingIntervalInSeconds":5}
		]`))
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, "", server.Client())
	sensors, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, sensors, 2)
	assert.Equal(t, "s1", sensors[0].SensorID)
	assert.Equal(t, "humidity", sensors[0].MeasurementType)
	assert.Equal(t, 30, sensors[0].MinPollIntervalSec)
	assert.Equal(t, "s2", sensors[1].SensorID)
}

func TestFetchReadingHonorsContext(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	client := NewTelemetryClient(server.URL, "", server.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchReading(ctx, "s1")
	require.Error(t, err)
}
