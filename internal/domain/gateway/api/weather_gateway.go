package api

import (
	"context"

	"weather-dashboard/internal/domain/model/external"
)

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// GetCurrentWeather gets current conditions for a coordinate.
	// Errors wrap ErrTransport or ErrParse, or are a *ProviderError.
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*external.CurrentWeatherResponse, error)

	// GetForecast gets the 5-day / 3-hour forecast for a coordinate.
	// Errors wrap ErrTransport or ErrParse, or are a *ProviderError.
	GetForecast(ctx context.Context, lat, lon float64) (*external.ForecastResponse, error)
}
