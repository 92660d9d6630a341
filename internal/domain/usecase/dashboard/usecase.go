package dashboard

import (
	"context"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/model"
)

type UseCase interface {
	// Handle runs fetch, aggregation and presentation for the event, then stores and publishes the view model
	Handle(ctx context.Context, event Event) model.ViewModel

	// Current returns the latest published view model, false before the first refresh
	Current() (model.ViewModel, bool)

	// Cities returns the configured cities in display order
	Cities() []entity.City

	// SelectedCity returns the city refreshed by TimerTick
	SelectedCity() string

	// Health reports the status of the latest refresh
	Health() model.ComponentHealthStatus
}
