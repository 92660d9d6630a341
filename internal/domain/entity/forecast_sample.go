package entity

import "time"

// ForecastSample is one forecast data point at a fixed future timestamp.
type ForecastSample struct {
	Time                     time.Time `json:"time"`
	Temperature              float64   `json:"temperature"` // °C, 1 decimal
	Humidity                 int       `json:"humidity"`
	WindSpeed                float64   `json:"windSpeed"` // km/h, 1 decimal
	PrecipitationProbability int       `json:"precipitationProbability"`
	Description              string    `json:"description"`
}

// DayKey is the calendar date of the sample in its own location, formatted YYYY-MM-DD.
func (s ForecastSample) DayKey() string {
	return s.Time.Format(time.DateOnly)
}

// DailySummary is the sample chosen to represent one calendar day.
type DailySummary struct {
	Day string `json:"day"`
	ForecastSample
}
