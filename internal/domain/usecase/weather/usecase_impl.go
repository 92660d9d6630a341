package weather

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
	"weather-dashboard/pkg/util/numberutils"
)

const (
	// MaxForecastSamples is five days at the provider's 3-hour spacing
	MaxForecastSamples = 40

	metersPerSecondToKmh = 3.6
	defaultVisibility    = 10000
)

type weatherUseCase struct {
	apiGateway api.WeatherGateway
	location   *time.Location
}

// NewWeatherUseCase creates the weather client. Forecast timestamps are expressed in location, nil means time.Local.
func NewWeatherUseCase(apiGateway api.WeatherGateway, location *time.Location) UseCase {
	if location == nil {
		location = time.Local
	}

	return &weatherUseCase{
		apiGateway: apiGateway,
		location:   location,
	}
}

// FetchCurrent gets the current weather and converts it to dashboard units
func (uc *weatherUseCase) FetchCurrent(ctx context.Context, lat, lon float64) (entity.CurrentConditions, bool) {
	response, err := uc.apiGateway.GetCurrentWeather(ctx, lat, lon)
	if err != nil {
		log.Warn(msg.GetMessage("provider.current-unavailable", lat, lon, err), zap.Error(err))
		return entity.CurrentConditions{}, false
	}

	return uc.convertCurrentResponse(response), true
}

// FetchForecast gets the 5-day forecast and converts every item to a sample
func (uc *weatherUseCase) FetchForecast(ctx context.Context, lat, lon float64) []entity.ForecastSample {
	response, err := uc.apiGateway.GetForecast(ctx, lat, lon)
	if err != nil {
		log.Warn(msg.GetMessage("provider.forecast-unavailable", lat, lon, err), zap.Error(err))
		return []entity.ForecastSample{}
	}

	return uc.convertForecastResponse(response)
}

// convertCurrentResponse converts a validated current weather response to the entity
func (uc *weatherUseCase) convertCurrentResponse(response *external.CurrentWeatherResponse) entity.CurrentConditions {
	visibility := defaultVisibility
	if response.Visibility != nil {
		visibility = *response.Visibility
	}

	return entity.CurrentConditions{
		Temperature: numberutils.Round(response.Main.Temp, 1),
		FeelsLike:   numberutils.Round(response.Main.FeelsLike, 1),
		Humidity:    response.Main.Humidity,
		Pressure:    numberutils.Round(response.Main.Pressure, 2),
		WindSpeed:   numberutils.Round(response.Wind.Speed*metersPerSecondToKmh, 2),
		Visibility:  numberutils.Round(float64(visibility)/1000, 1),
		Description: cases.Title(language.English).String(response.Weather[0].Description),
		Icon:        response.Weather[0].Icon,
		Clouds:      response.Clouds.All,
	}
}

// convertForecastResponse converts a validated forecast response to samples, keeping provider order
func (uc *weatherUseCase) convertForecastResponse(response *external.ForecastResponse) []entity.ForecastSample {
	items := response.List
	if len(items) > MaxForecastSamples {
		items = items[:MaxForecastSamples]
	}

	samples := make([]entity.ForecastSample, 0, len(items))
	for _, item := range items {
		precipitation := 0
		if item.Pop != nil {
			precipitation = numberutils.RoundToInt(*item.Pop * 100)
		}

		samples = append(samples, entity.ForecastSample{
			Time:                     time.Unix(item.Dt, 0).In(uc.location),
			Temperature:              numberutils.Round(item.Main.Temp, 1),
			Humidity:                 item.Main.Humidity,
			WindSpeed:                numberutils.Round(item.Wind.Speed*metersPerSecondToKmh, 1),
			PrecipitationProbability: precipitation,
			Description:              item.Weather[0].Description,
		})
	}

	return samples
}
