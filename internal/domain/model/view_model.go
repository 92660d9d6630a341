package model

import "time"

// ViewStatus tells the rendering layer whether the view carries data or placeholders.
type ViewStatus string

const (
	ViewStatusOK     ViewStatus = "OK"
	ViewStatusNoData ViewStatus = "NO_DATA"
	ViewStatusError  ViewStatus = "ERROR"
)

// Theme is a named background preset selected from weather description keywords.
type Theme struct {
	Name     string `json:"name"`
	Gradient string `json:"gradient"`
}

// MetricCard is a single labelled metric of the current conditions.
type MetricCard struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// DayCard is one entry of the weekly overview.
type DayCard struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
}

// ChartPoint is a (timestamp, temperature) pair of the hourly chart.
type ChartPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}

// Chart describes the short-term temperature chart.
type Chart struct {
	Title  string       `json:"title"`
	YAxis  string       `json:"yAxis"`
	Points []ChartPoint `json:"points"`
}

// ViewModel is the complete data package handed to the rendering layer for one dashboard refresh.
// When Status is not OK every display field carries Placeholder and Weekly/Chart.Points are empty.
type ViewModel struct {
	RequestID   string     `json:"requestId"`
	Status      ViewStatus `json:"status"`
	Placeholder string     `json:"placeholder,omitempty"`
	City        string     `json:"city"`
	LocalTime   string     `json:"localTime"`
	Temperature string     `json:"temperature"`
	Description string     `json:"description"`
	FeelsLike   string     `json:"feelsLike"`
	Humidity    MetricCard `json:"humidity"`
	Wind        MetricCard `json:"wind"`
	Pressure    MetricCard `json:"pressure"`
	Visibility  MetricCard `json:"visibility"`
	Weekly      []DayCard  `json:"weekly"`
	Chart       Chart      `json:"chart"`
	Theme       Theme      `json:"theme"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
