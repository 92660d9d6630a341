package entity

// DefaultVisibilityKm is reported when the provider omits visibility.
const DefaultVisibilityKm = 10.0

// CurrentConditions is the normalized result of one current weather fetch.
type CurrentConditions struct {
	Temperature float64 `json:"temperature"` // °C, 1 decimal
	FeelsLike   float64 `json:"feelsLike"`   // °C, 1 decimal
	Humidity    int     `json:"humidity"`    // %
	Pressure    float64 `json:"pressure"`    // hPa, 2 decimals
	WindSpeed   float64 `json:"windSpeed"`   // km/h, 2 decimals
	Visibility  float64 `json:"visibility"`  // km, 1 decimal
	Description string  `json:"description"` // title-cased
	Icon        string  `json:"icon"`
	Clouds      int     `json:"clouds"` // %
}
