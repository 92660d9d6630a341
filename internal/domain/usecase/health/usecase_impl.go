package health

import (
	"context"

	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/usecase/dashboard"
)

// PublisherHealth reports the health of every view model publisher keyed by name
type PublisherHealth interface {
	Components(ctx context.Context) map[string]model.ComponentHealthStatus
}

type healthUseCase struct {
	dashboardUseCase dashboard.UseCase
	publishers       PublisherHealth
}

func NewHealthUseCase(dashboardUseCase dashboard.UseCase, publishers PublisherHealth) UseCase {
	return &healthUseCase{
		dashboardUseCase: dashboardUseCase,
		publishers:       publishers,
	}
}

// CheckHealth is DOWN only when a publisher is DOWN. A dashboard showing NO_DATA is reported in its component
// but does not take the service down, since the provider being unreachable is a normal outcome.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dashboardHealth := useCase.dashboardUseCase.Health()
	publishers := useCase.publishers.Components(ctx)

	overallStatus := model.StatusUp
	for _, publisherHealth := range publishers {
		if publisherHealth.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:     overallStatus,
		Dashboard:  dashboardHealth,
		Publishers: publishers,
	}
}
