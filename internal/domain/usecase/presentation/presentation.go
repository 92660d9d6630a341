// Package presentation turns normalized weather records into display strings, glyphs and themes.
// Every function is pure and total.
package presentation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/model"
	"weather-dashboard/pkg/msg"
	"weather-dashboard/pkg/util/numberutils"
)

const (
	IconCloud = "☁️"
	IconClear = "☀️"
	IconRain  = "🌧️"
	IconMist  = "🌫️"

	IconHumidity   = "💧"
	IconWind       = "💨"
	IconPressure   = "🌡️"
	IconVisibility = "👁️"

	// LocalTimeLayout renders as "03:04 PM, January 02, 2006"
	LocalTimeLayout = "03:04 PM, January 02, 2006"
)

const (
	ThemeRain    = "rain"
	ThemeCloud   = "cloud"
	ThemeClear   = "clear"
	ThemeSnow    = "snow"
	ThemeDefault = "default"
)

var themes = map[string]string{
	ThemeRain:    "linear-gradient(135deg, #0a0e14 0%, #1a1f2e 30%, #2d3748 70%, #4a5568 100%)",
	ThemeCloud:   "linear-gradient(135deg, #0a0e14 0%, #1e293b 40%, #374151 80%, #4b5563 100%)",
	ThemeClear:   "linear-gradient(135deg, #0a0e14 0%, #1e293b 30%, #1e40af 70%, #3b82f6 100%)",
	ThemeSnow:    "linear-gradient(135deg, #0a0e14 0%, #1e293b 40%, #374151 80%, #6b7280 100%)",
	ThemeDefault: "linear-gradient(135deg, #0a0e14 0%, #1a1f2e 50%, #2d3748 100%)",
}

// theme keywords in match order
var themeKeywords = []string{ThemeRain, ThemeCloud, ThemeClear, ThemeSnow}

// FormatTemperature renders a temperature with one decimal, e.g. "29.5°C"
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%.1f°C", celsius)
}

// FormatFeelsLike renders the feels-like line of the current conditions
func FormatFeelsLike(celsius float64) string {
	return msg.GetMessage("dashboard.feels-like", strconv.FormatFloat(celsius, 'f', 1, 64))
}

// ClassifyIcon maps a description to a glyph. The first keyword found wins, in the order cloud, clear, rain.
func ClassifyIcon(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "cloud"):
		return IconCloud
	case strings.Contains(lower, "clear"):
		return IconClear
	case strings.Contains(lower, "rain"):
		return IconRain
	default:
		return IconMist
	}
}

// SelectTheme picks the background preset for a description. hour is accepted for day/night variants, none exist yet.
func SelectTheme(description string, hour int) model.Theme {
	_ = hour
	lower := strings.ToLower(description)
	for _, keyword := range themeKeywords {
		if strings.Contains(lower, keyword) {
			return theme(keyword)
		}
	}
	return theme(ThemeDefault)
}

// DefaultTheme is the preset shown when there is nothing to describe
func DefaultTheme() model.Theme {
	return theme(ThemeClear)
}

func theme(name string) model.Theme {
	return model.Theme{Name: name, Gradient: themes[name]}
}

// FormatMetricCard builds a card; int values print as integers, floats keep at least one decimal.
func FormatMetricCard(icon, label string, value any, unit string) model.MetricCard {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case int:
		text = strconv.Itoa(v)
	case float64:
		text = numberutils.FormatDecimal(v)
	default:
		text = fmt.Sprint(v)
	}

	return model.MetricCard{Icon: icon, Label: label, Value: text, Unit: unit}
}

// MetricCards builds the humidity, wind, pressure and visibility cards in display order
func MetricCards(current entity.CurrentConditions) (humidity, wind, pressure, visibility model.MetricCard) {
	humidity = FormatMetricCard(IconHumidity, msg.GetMessage("dashboard.card.humidity"), current.Humidity, "%")
	wind = FormatMetricCard(IconWind, msg.GetMessage("dashboard.card.wind"), current.WindSpeed, "km/h")
	pressure = FormatMetricCard(IconPressure, msg.GetMessage("dashboard.card.pressure"), pressureValue(current.Pressure), "hPa")
	visibility = FormatMetricCard(IconVisibility, msg.GetMessage("dashboard.card.visibility"), current.Visibility, "km")
	return
}

// pressureValue keeps whole hPa readings, as the provider sends them, integral
func pressureValue(pressure float64) any {
	if pressure == math.Trunc(pressure) && math.Abs(pressure) < math.MaxInt32 {
		return int(pressure)
	}
	return pressure
}

// PlaceholderCards builds the four metric cards with value set to text and no unit
func PlaceholderCards(text string) (humidity, wind, pressure, visibility model.MetricCard) {
	humidity = FormatMetricCard(IconHumidity, msg.GetMessage("dashboard.card.humidity"), text, "")
	wind = FormatMetricCard(IconWind, msg.GetMessage("dashboard.card.wind"), text, "")
	pressure = FormatMetricCard(IconPressure, msg.GetMessage("dashboard.card.pressure"), text, "")
	visibility = FormatMetricCard(IconVisibility, msg.GetMessage("dashboard.card.visibility"), text, "")
	return
}

// FormatDayCard renders one daily summary as weekday abbreviation, glyph and temperature
func FormatDayCard(summary entity.DailySummary) model.DayCard {
	return model.DayCard{
		Date:        summary.Day,
		Weekday:     summary.Time.Format("Mon"),
		Icon:        ClassifyIcon(summary.Description),
		Temperature: fmt.Sprintf("%.1f°", summary.Temperature),
	}
}

// FormatDayCards renders summaries in order
func FormatDayCards(summaries []entity.DailySummary) []model.DayCard {
	cards := make([]model.DayCard, 0, len(summaries))
	for _, summary := range summaries {
		cards = append(cards, FormatDayCard(summary))
	}
	return cards
}

// ChartSeries builds the chart descriptor from an hourly series
func ChartSeries(samples []entity.ForecastSample) model.Chart {
	points := make([]model.ChartPoint, 0, len(samples))
	for _, sample := range samples {
		points = append(points, model.ChartPoint{Time: sample.Time, Temperature: sample.Temperature})
	}

	return model.Chart{
		Title:  msg.GetMessage("dashboard.chart.title"),
		YAxis:  msg.GetMessage("dashboard.chart.axis"),
		Points: points,
	}
}

// FormatLocalTime renders t as "hh:mm AM/PM, Month DD, YYYY"
func FormatLocalTime(t time.Time) string {
	return t.Format(LocalTimeLayout)
}
