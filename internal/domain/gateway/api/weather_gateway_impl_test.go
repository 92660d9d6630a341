package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "weather-dashboard/pkg/http"
)

const currentWeatherBody = `{
  "name": "Mumbai",
  "dt": 1704067200,
  "main": {"temp": 29.46, "feels_like": 31.02, "pressure": 1012, "humidity": 62},
  "wind": {"speed": 3.1, "deg": 270},
  "weather": [{"id": 721, "main": "Haze", "description": "haze", "icon": "50d"}],
  "clouds": {"all": 20},
  "visibility": 3000
}`

const forecastBody = `{
  "cod": "200",
  "cnt": 2,
  "list": [
    {"dt": 1704067200, "main": {"temp": 25.1, "humidity": 70}, "wind": {"speed": 2}, "weather": [{"description": "clear sky"}], "pop": 0},
    {"dt": 1704078000, "main": {"temp": 24.3, "humidity": 72}, "wind": {"speed": 2.5}, "weather": [{"description": "few clouds"}]}
  ]
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) WeatherGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWeatherGateway(server.URL+"/data/2.5", "test-key", "", httpclient.ClientOptions{ReadTimeout: time.Second})
}

func TestGetCurrentWeatherSendsCoordinatesAndCredential(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "19.076", query.Get("lat"))
		assert.Equal(t, "72.8777", query.Get("lon"))
		assert.Equal(t, "test-key", query.Get("appid"))
		assert.Equal(t, "metric", query.Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentWeatherBody))
	})

	response, err := gateway.GetCurrentWeather(context.Background(), 19.076, 72.8777)

	require.NoError(t, err)
	assert.Equal(t, 29.46, response.Main.Temp)
	assert.Equal(t, 3.1, response.Wind.Speed)
	assert.Equal(t, "haze", response.Weather[0].Description)
	require.NotNil(t, response.Visibility)
	assert.Equal(t, 3000, *response.Visibility)
}

func TestGetForecastDecodesList(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	})

	response, err := gateway.GetForecast(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Len(t, response.List, 2)
	require.NotNil(t, response.List[0].Pop)
	assert.Nil(t, response.List[1].Pop)
}

func TestGatewayReturnsProviderError(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	_, err := gateway.GetCurrentWeather(context.Background(), 1, 2)

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Equal(t, "Invalid API key", providerErr.Message)
}

func TestGatewayReturnsParseErrorOnMissingBlocks(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main": {"temp": 20}, "weather": []}`))
	})

	_, err := gateway.GetCurrentWeather(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrParse)
}

func TestGatewayReturnsParseErrorOnGarbage(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := gateway.GetForecast(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrParse)
}

func TestGatewayReturnsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	gateway := NewWeatherGateway(baseURL, "k", "metric", httpclient.ClientOptions{ReadTimeout: time.Second})
	_, err := gateway.GetForecast(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrTransport)
}

func TestGatewayTransportErrorHidesAPIKey(t *testing.T) {
	gateway := NewWeatherGateway(newSlowServer(t).URL, "SECRET123", "metric", httpclient.ClientOptions{ReadTimeout: 20 * time.Millisecond})

	_, err := gateway.GetCurrentWeather(context.Background(), 1, 2)

	require.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "SECRET123")
}

func newSlowServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	return server
}
