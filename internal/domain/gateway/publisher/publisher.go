package publisher

import (
	"context"
	"errors"
	"fmt"

	"weather-dashboard/internal/domain/model"
)

// ViewModelPublisher hands a finished view model to a rendering channel
type ViewModelPublisher interface {
	Name() string
	Publish(ctx context.Context, viewModel model.ViewModel) error
	Health(ctx context.Context) model.ComponentHealthStatus
}

// FanOut publishes to every publisher in order. A failing publisher does not stop the others.
type FanOut struct {
	publishers []ViewModelPublisher
}

func NewFanOut(publishers ...ViewModelPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) Name() string {
	return "fan-out"
}

func (f *FanOut) Publish(ctx context.Context, viewModel model.ViewModel) error {
	var errs []error
	for _, publisher := range f.publishers {
		if err := publisher.Publish(ctx, viewModel); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", publisher.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Health is DOWN when any publisher is DOWN
func (f *FanOut) Health(ctx context.Context) model.ComponentHealthStatus {
	status := model.StatusUp
	details := make(map[string]string, len(f.publishers))
	for _, publisher := range f.publishers {
		health := publisher.Health(ctx)
		details[publisher.Name()] = string(health.Status)
		if health.Status == model.StatusDown {
			status = model.StatusDown
		}
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}

// Components reports the health of each publisher keyed by name
func (f *FanOut) Components(ctx context.Context) map[string]model.ComponentHealthStatus {
	components := make(map[string]model.ComponentHealthStatus, len(f.publishers))
	for _, publisher := range f.publishers {
		components[publisher.Name()] = publisher.Health(ctx)
	}
	return components
}
