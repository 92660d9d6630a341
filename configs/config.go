package configs

import (
	"errors"
	"fmt"
	"time"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/pkg/resource"
)

type ServerConfig struct {
	Port        int
	ContextPath string
}

type ProviderConfig struct {
	BaseURL           string
	APIKey            string
	Units             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// SampleLocation is the location forecast timestamps are expressed in, and so the one day keys use
	SampleLocation *time.Location
}

type DashboardConfig struct {
	DefaultCity   string
	RefreshPeriod time.Duration
	StreamBuffer  int
	Cities        []entity.City
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	Database int
	Channel  string
}

// Config is the application configuration, built once at startup and passed to constructors
type Config struct {
	ApplicationName string
	LogLevel        string
	Server          ServerConfig
	Provider        ProviderConfig
	Dashboard       DashboardConfig
	Redis           RedisConfig
}

type cityProperties struct {
	Name      string  `mapstructure:"name"`
	Latitude  float64 `mapstructure:"lat"`
	Longitude float64 `mapstructure:"lon"`
	Timezone  string  `mapstructure:"tz"`
}

// Load reads the properties file at path and builds a validated Config
func Load(path string) (*Config, error) {
	props, err := resource.Load(path)
	if err != nil {
		return nil, err
	}

	var cityProps []cityProperties
	if err := props.UnmarshalKey("app.dashboard.cities", &cityProps); err != nil {
		return nil, fmt.Errorf("invalid app.dashboard.cities: %w", err)
	}
	cities := make([]entity.City, 0, len(cityProps))
	for _, city := range cityProps {
		cities = append(cities, entity.City{
			Name:      city.Name,
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
			Timezone:  city.Timezone,
		})
	}

	sampleTimezone := stringOrDefault(props.GetString("app.provider.sample-timezone"), "Local")
	sampleLocation, err := time.LoadLocation(sampleTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid app.provider.sample-timezone %q: %w", sampleTimezone, err)
	}

	config := &Config{
		ApplicationName: stringOrDefault(props.GetString("app.name"), "weather-dashboard"),
		LogLevel:        stringOrDefault(props.GetString("app.log.level"), "info"),
		Server: ServerConfig{
			Port:        intOrDefault(props.GetInt("app.server.port"), 8050),
			ContextPath: props.GetString("app.server.context-path"),
		},
		Provider: ProviderConfig{
			BaseURL:           props.GetString("app.provider.base-url"),
			APIKey:            props.GetString("app.provider.api-key"),
			Units:             stringOrDefault(props.GetString("app.provider.units"), "metric"),
			Timeout:           durationOrDefault(props.GetDuration("app.provider.timeout"), 10*time.Second),
			RequestsPerSecond: props.GetFloat64("app.provider.rate-limit.requests-per-second"),
			Burst:             props.GetInt("app.provider.rate-limit.burst"),
			SampleLocation:    sampleLocation,
		},
		Dashboard: DashboardConfig{
			DefaultCity:   props.GetString("app.dashboard.default-city"),
			RefreshPeriod: props.GetDuration("app.dashboard.refresh-period"),
			StreamBuffer:  intOrDefault(props.GetInt("app.dashboard.stream-buffer"), 8),
			Cities:        cities,
		},
		Redis: RedisConfig{
			Enabled:  props.GetBool("app.redis.enabled"),
			Host:     props.GetString("app.redis.host"),
			Port:     props.GetInt("app.redis.port"),
			Password: props.GetString("app.redis.password"),
			Database: props.GetInt("app.redis.database"),
			Channel:  props.GetString("app.redis.channel"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the dashboard cannot start with
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return errors.New("app.provider.base-url is required")
	}
	if len(c.Dashboard.Cities) == 0 {
		return errors.New("app.dashboard.cities must not be empty")
	}
	if c.Dashboard.RefreshPeriod <= 0 {
		return fmt.Errorf("invalid app.dashboard.refresh-period %s", c.Dashboard.RefreshPeriod)
	}

	seen := make(map[string]struct{}, len(c.Dashboard.Cities))
	for _, city := range c.Dashboard.Cities {
		if city.Name == "" {
			return errors.New("city name is required")
		}
		if _, duplicated := seen[city.Name]; duplicated {
			return fmt.Errorf("city %s is configured twice", city.Name)
		}
		seen[city.Name] = struct{}{}

		if _, err := time.LoadLocation(city.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q for city %s: %w", city.Timezone, city.Name, err)
		}
	}

	if _, ok := c.City(c.Dashboard.DefaultCity); !ok {
		return fmt.Errorf("default city %q is not configured", c.Dashboard.DefaultCity)
	}
	if c.Redis.Enabled && c.Redis.Channel == "" {
		return errors.New("app.redis.channel is required when redis is enabled")
	}
	return nil
}

// City finds a configured city by name
func (c *Config) City(name string) (entity.City, bool) {
	for _, city := range c.Dashboard.Cities {
		if city.Name == name {
			return city, true
		}
	}
	return entity.City{}, false
}

func stringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func intOrDefault(value, defaultValue int) int {
	if value == 0 {
		return defaultValue
	}
	return value
}

func durationOrDefault(value, defaultValue time.Duration) time.Duration {
	if value == 0 {
		return defaultValue
	}
	return value
}
