// Package forecast reduces a forecast time series to the two views the dashboard shows.
package forecast

import "weather-dashboard/internal/domain/entity"

const (
	// HourlySeriesLength is the number of samples charted. At 3-hour spacing it covers 72 hours.
	HourlySeriesLength = 24
	// DailySummaryLimit is the number of day cards of the weekly overview
	DailySummaryLimit = 7
)

// HourlySeries returns the first min(HourlySeriesLength, len(samples)) samples unchanged.
// The result never aliases the input.
func HourlySeries(samples []entity.ForecastSample) []entity.ForecastSample {
	n := min(len(samples), HourlySeriesLength)
	series := make([]entity.ForecastSample, n)
	copy(series, samples[:n])
	return series
}

// DailySummaries keeps the first sample of each calendar day in input order, stopping at DailySummaryLimit days.
// Days are keyed on the sample timestamp as it is, without timezone conversion.
func DailySummaries(samples []entity.ForecastSample) []entity.DailySummary {
	summaries := make([]entity.DailySummary, 0, DailySummaryLimit)
	seen := make(map[string]struct{}, DailySummaryLimit)

	for _, sample := range samples {
		if len(summaries) == DailySummaryLimit {
			break
		}

		day := sample.DayKey()
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		summaries = append(summaries, entity.DailySummary{Day: day, ForecastSample: sample})
	}

	return summaries
}

// Samples unwraps summaries back to their samples, so DailySummaries(Samples(s)) == s.
func Samples(summaries []entity.DailySummary) []entity.ForecastSample {
	samples := make([]entity.ForecastSample, len(summaries))
	for i, summary := range summaries {
		samples[i] = summary.ForecastSample
	}
	return samples
}
