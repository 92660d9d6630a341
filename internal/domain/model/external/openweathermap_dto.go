package external

import (
	"errors"
	"fmt"
)

// MainDTO holds the thermodynamic block shared by current and forecast records
type MainDTO struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type WindDTO struct {
	Speed float64 `json:"speed"` // m/s with units=metric
	Deg   int     `json:"deg"`
}

type WeatherDTO struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CloudsDTO struct {
	All int `json:"all"`
}

// CurrentWeatherResponse represents the response of the /weather endpoint.
// Pointers mark the blocks whose absence makes the record unusable.
type CurrentWeatherResponse struct {
	Name       string       `json:"name"`
	Dt         int64        `json:"dt"`
	Main       *MainDTO     `json:"main"`
	Wind       *WindDTO     `json:"wind"`
	Weather    []WeatherDTO `json:"weather"`
	Clouds     *CloudsDTO   `json:"clouds"`
	Visibility *int         `json:"visibility"` // meters
}

// ForecastItemDTO is one 3-hour step of the /forecast endpoint
type ForecastItemDTO struct {
	Dt      int64        `json:"dt"`
	Main    *MainDTO     `json:"main"`
	Wind    *WindDTO     `json:"wind"`
	Weather []WeatherDTO `json:"weather"`
	Clouds  *CloudsDTO   `json:"clouds"`
	Pop     *float64     `json:"pop"` // 0..1
}

// ForecastResponse represents the response of the /forecast endpoint
type ForecastResponse struct {
	Cod  string            `json:"cod"`
	Cnt  int               `json:"cnt"`
	List []ForecastItemDTO `json:"list"`
}

// APIErrorResponse represents error bodies of the provider, e.g. {"cod":401,"message":"Invalid API key"}
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// Validate checks the blocks the dashboard reads from a current weather record.
func (r *CurrentWeatherResponse) Validate() error {
	switch {
	case r.Main == nil:
		return errors.New("missing main block")
	case r.Wind == nil:
		return errors.New("missing wind block")
	case len(r.Weather) == 0:
		return errors.New("missing weather[0]")
	case r.Clouds == nil:
		return errors.New("missing clouds block")
	}
	return nil
}

// Validate checks every forecast item. A response without a list is invalid, an empty list is not.
func (r *ForecastResponse) Validate() error {
	if r.List == nil {
		return errors.New("missing list")
	}
	for i, item := range r.List {
		switch {
		case item.Main == nil:
			return fmt.Errorf("list[%d]: missing main block", i)
		case item.Wind == nil:
			return fmt.Errorf("list[%d]: missing wind block", i)
		case len(item.Weather) == 0:
			return fmt.Errorf("list[%d]: missing weather[0]", i)
		}
	}
	return nil
}
