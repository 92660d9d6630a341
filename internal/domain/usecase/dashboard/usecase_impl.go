package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/gateway/publisher"
	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/usecase/forecast"
	"weather-dashboard/internal/domain/usecase/presentation"
	"weather-dashboard/internal/domain/usecase/weather"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
)

type dashboardUseCase struct {
	weatherUseCase weather.UseCase
	publisher      publisher.ViewModelPublisher
	cities         []entity.City
	citiesByName   map[string]entity.City

	now       func() time.Time
	requestID func() string

	// publishMutex pairs each store with its publish; mutex guards the state readers see
	publishMutex sync.Mutex
	mutex        sync.Mutex
	selected     string
	current      *model.ViewModel
}

// NewDashboardUseCase creates the dashboard reducer. defaultCity is selected until a CitySelected event arrives.
func NewDashboardUseCase(weatherUseCase weather.UseCase, viewModelPublisher publisher.ViewModelPublisher, cities []entity.City, defaultCity string) UseCase {
	citiesByName := make(map[string]entity.City, len(cities))
	for _, city := range cities {
		citiesByName[city.Name] = city
	}

	return &dashboardUseCase{
		weatherUseCase: weatherUseCase,
		publisher:      viewModelPublisher,
		cities:         append([]entity.City(nil), cities...),
		citiesByName:   citiesByName,
		now:            time.Now,
		requestID:      uuid.NewString,
		selected:       defaultCity,
	}
}

func (uc *dashboardUseCase) Handle(ctx context.Context, event Event) model.ViewModel {
	cityName := uc.SelectedCity()
	if selected, ok := event.(CitySelected); ok {
		cityName = selected.City
	}

	requestID := uc.requestID()
	log.Info(msg.GetMessage("dashboard.refresh-start", cityName), zap.String("request_id", requestID), zap.String("event", fmt.Sprintf("%T", event)))

	viewModel := uc.refresh(ctx, requestID, cityName)
	if viewModel.Status != model.ViewStatusError {
		if _, ok := event.(CitySelected); ok {
			uc.mutex.Lock()
			uc.selected = cityName
			uc.mutex.Unlock()
		}
	}

	uc.storeAndPublish(ctx, viewModel)

	log.Info(msg.GetMessage("dashboard.refresh-end", cityName, string(viewModel.Status)), zap.String("request_id", requestID))
	return viewModel
}

// refresh builds the view model for one city, never failing: problems become NO_DATA or ERROR views
func (uc *dashboardUseCase) refresh(ctx context.Context, requestID, cityName string) model.ViewModel {
	city, ok := uc.citiesByName[cityName]
	if !ok {
		log.Warn(msg.GetMessage("dashboard.unknown-city", cityName), zap.String("request_id", requestID))
		return uc.errorViewModel(requestID, cityName)
	}

	location, err := time.LoadLocation(city.Timezone)
	if err != nil {
		log.Error(msg.GetMessage("dashboard.timezone-failed", city.Timezone, city.Name, err), zap.String("request_id", requestID))
		return uc.errorViewModel(requestID, cityName)
	}
	localNow := uc.now().In(location)

	current, hasCurrent, samples := uc.fetchInParallel(ctx, city)
	if !hasCurrent {
		return uc.noDataViewModel(requestID, city.Name, localNow)
	}

	humidity, wind, pressure, visibility := presentation.MetricCards(current)
	return model.ViewModel{
		RequestID:   requestID,
		Status:      model.ViewStatusOK,
		City:        city.Name,
		LocalTime:   presentation.FormatLocalTime(localNow),
		Temperature: presentation.FormatTemperature(current.Temperature),
		Description: current.Description,
		FeelsLike:   presentation.FormatFeelsLike(current.FeelsLike),
		Humidity:    humidity,
		Wind:        wind,
		Pressure:    pressure,
		Visibility:  visibility,
		Weekly:      presentation.FormatDayCards(forecast.DailySummaries(samples)),
		Chart:       presentation.ChartSeries(forecast.HourlySeries(samples)),
		Theme:       presentation.SelectTheme(current.Description, localNow.Hour()),
		UpdatedAt:   uc.now(),
	}
}

// fetchInParallel gets current conditions and forecast for a city in parallel
func (uc *dashboardUseCase) fetchInParallel(ctx context.Context, city entity.City) (entity.CurrentConditions, bool, []entity.ForecastSample) {
	var wg sync.WaitGroup
	var current entity.CurrentConditions
	var hasCurrent bool
	var samples []entity.ForecastSample

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, hasCurrent = uc.weatherUseCase.FetchCurrent(ctx, city.Latitude, city.Longitude)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		samples = uc.weatherUseCase.FetchForecast(ctx, city.Latitude, city.Longitude)
	}()

	wg.Wait()

	return current, hasCurrent, samples
}

func (uc *dashboardUseCase) noDataViewModel(requestID, cityName string, localNow time.Time) model.ViewModel {
	return uc.placeholderViewModel(requestID, cityName, model.ViewStatusNoData,
		presentation.FormatLocalTime(localNow), msg.GetMessage("dashboard.placeholder.no-data"))
}

func (uc *dashboardUseCase) errorViewModel(requestID, cityName string) model.ViewModel {
	return uc.placeholderViewModel(requestID, cityName, model.ViewStatusError,
		msg.GetMessage("dashboard.placeholder.time-error"), msg.GetMessage("dashboard.placeholder.error"))
}

func (uc *dashboardUseCase) placeholderViewModel(requestID, cityName string, status model.ViewStatus, localTime, placeholder string) model.ViewModel {
	humidity, wind, pressure, visibility := presentation.PlaceholderCards(placeholder)
	return model.ViewModel{
		RequestID:   requestID,
		Status:      status,
		Placeholder: placeholder,
		City:        cityName,
		LocalTime:   localTime,
		Temperature: msg.GetMessage("dashboard.placeholder.temperature"),
		Description: placeholder,
		FeelsLike:   placeholder,
		Humidity:    humidity,
		Wind:        wind,
		Pressure:    pressure,
		Visibility:  visibility,
		Weekly:      []model.DayCard{},
		Chart:       presentation.ChartSeries(nil),
		Theme:       presentation.DefaultTheme(),
		UpdatedAt:   uc.now(),
	}
}

// storeAndPublish keeps the view model as current and publishes it. publishMutex orders concurrent refreshes so
// the last one stored is also the last one published, readers only wait for the store.
func (uc *dashboardUseCase) storeAndPublish(ctx context.Context, viewModel model.ViewModel) {
	uc.publishMutex.Lock()
	defer uc.publishMutex.Unlock()

	uc.mutex.Lock()
	uc.current = &viewModel
	uc.mutex.Unlock()

	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, viewModel); err != nil {
		log.Warn(msg.GetMessage("dashboard.publish-failed", viewModel.City, err), zap.String("request_id", viewModel.RequestID))
	}
}

func (uc *dashboardUseCase) Current() (model.ViewModel, bool) {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.current == nil {
		return model.ViewModel{}, false
	}
	return *uc.current, true
}

func (uc *dashboardUseCase) Cities() []entity.City {
	return append([]entity.City(nil), uc.cities...)
}

func (uc *dashboardUseCase) SelectedCity() string {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()
	return uc.selected
}

// Health is UNKNOWN before the first refresh, UP after an OK refresh and DOWN otherwise
func (uc *dashboardUseCase) Health() model.ComponentHealthStatus {
	viewModel, ok := uc.Current()
	if !ok {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": msg.GetMessage("dashboard.no-view-model")},
		}
	}

	status := model.StatusUp
	if viewModel.Status != model.ViewStatusOK {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{
		Status: status,
		Details: map[string]string{
			"city":         viewModel.City,
			"view_status":  string(viewModel.Status),
			"request_id":   viewModel.RequestID,
			"last_refresh": viewModel.UpdatedAt.Format(time.RFC3339),
		},
	}
}
