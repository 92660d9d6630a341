package api

import (
	"context"
	"fmt"
	"strconv"

	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/pkg/http"
)

const (
	currentWeatherPath = "/weather"
	forecastPath       = "/forecast"
	apiKeyParam        = "appid"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	units      string
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, apiKey string, units string, clientOptions http.ClientOptions) WeatherGateway {
	if units == "" {
		units = "metric"
	}
	clientOptions.RedactedParams = append(clientOptions.RedactedParams, apiKeyParam)

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
		units:      units,
	}
}

// GetCurrentWeather gets current conditions for a coordinate
func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, lat, lon float64) (*external.CurrentWeatherResponse, error) {
	successResp, errResp, status, err := w.newRequest(currentWeatherPath, lat, lon).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute(ctx)

	if err != nil {
		return nil, classify(status, errResp, err)
	}

	response := successResp.(*external.CurrentWeatherResponse)
	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return response, nil
}

// GetForecast gets the 5-day / 3-hour forecast for a coordinate
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, lat, lon float64) (*external.ForecastResponse, error) {
	successResp, errResp, status, err := w.newRequest(forecastPath, lat, lon).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute(ctx)

	if err != nil {
		return nil, classify(status, errResp, err)
	}

	response := successResp.(*external.ForecastResponse)
	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return response, nil
}

func (w *weatherGatewayImpl) newRequest(path string, lat, lon float64) *http.Request {
	return w.httpClient.Request().
		WithMethod(http.GET).
		WithPath(path).
		WithQueryParam("lat", strconv.FormatFloat(lat, 'f', -1, 64)).
		WithQueryParam("lon", strconv.FormatFloat(lon, 'f', -1, 64)).
		WithQueryParam(apiKeyParam, w.apiKey).
		WithQueryParam("units", w.units)
}

// classify maps the outcome of pkg/http into the gateway error taxonomy
func classify(status int, errResp any, err error) error {
	switch {
	case status == 0:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	case status >= 200 && status < 300:
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	providerErr := &ProviderError{StatusCode: status}
	if apiErr, ok := errResp.(*external.APIErrorResponse); ok && apiErr != nil {
		providerErr.Message = apiErr.Message
	}
	return providerErr
}
