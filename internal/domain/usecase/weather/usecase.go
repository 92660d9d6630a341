package weather

import (
	"context"

	"weather-dashboard/internal/domain/entity"
)

type UseCase interface {
	// FetchCurrent returns the normalized current conditions for a coordinate, ok is false when no data is available
	FetchCurrent(ctx context.Context, lat, lon float64) (entity.CurrentConditions, bool)

	// FetchForecast returns up to MaxForecastSamples samples in provider order, empty when no data is available
	FetchForecast(ctx context.Context, lat, lon float64) []entity.ForecastSample
}
