package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-dashboard/configs"
	"weather-dashboard/internal/application/controller"
	"weather-dashboard/internal/application/middleware"
	"weather-dashboard/internal/application/schedule"
	"weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/gateway/publisher"
	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/internal/domain/usecase/health"
	"weather-dashboard/internal/domain/usecase/weather"
	httpclient "weather-dashboard/pkg/http"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
	"weather-dashboard/pkg/redis"
	"weather-dashboard/pkg/resource"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	config, err := configs.Load(resource.PropertiesPath())
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	log.Init(config.ApplicationName)
	if err := log.SetLevel(config.LogLevel); err != nil {
		log.Warnf("Invalid log level %q, keeping info: %v", config.LogLevel, err)
	}
	defer log.Sync()
	log.Info(msg.GetMessage("app.start", config.ApplicationName))

	if config.Provider.APIKey == "" {
		log.Warn(msg.GetMessage("provider.missing-api-key"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init Gateway
	weatherGateway := api.NewWeatherGateway(config.Provider.BaseURL, config.Provider.APIKey, config.Provider.Units, httpclient.ClientOptions{
		ReadTimeout:       config.Provider.Timeout,
		ConnectionTimeout: config.Provider.Timeout,
		RequestsPerSecond: config.Provider.RequestsPerSecond,
		Burst:             config.Provider.Burst,
		Logger:            httpclient.NewZapLogger("appid"),
	})

	// Init Publishers
	memoryPublisher := publisher.NewMemoryPublisher(config.Dashboard.StreamBuffer)
	publishers := []publisher.ViewModelPublisher{memoryPublisher}
	if config.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.NewRedisConfig().
			WithHost(config.Redis.Host).
			WithPort(config.Redis.Port).
			WithPassword(config.Redis.Password).
			WithDatabase(config.Redis.Database))
		if err != nil {
			log.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		publishers = append(publishers, publisher.NewRedisPublisher(redisClient, config.Redis.Channel))
	}
	fanOut := publisher.NewFanOut(publishers...)

	// Init UseCase
	weatherUseCase := weather.NewWeatherUseCase(weatherGateway, config.Provider.SampleLocation)
	dashboardUseCase := dashboard.NewDashboardUseCase(weatherUseCase, fanOut, config.Dashboard.Cities, config.Dashboard.DefaultCity)
	healthUseCase := health.NewHealthUseCase(dashboardUseCase, fanOut)

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e, "/health", "/stream")
	group := e.Group(config.Server.ContextPath)

	controller.NewHealthController(group, healthUseCase).InitHealthRoutes()
	controller.NewDashboardController(group, dashboardUseCase, memoryPublisher).InitDashboardRoutes()

	// Init Schedule
	dashboardScheduler := schedule.NewDashboardScheduler(dashboardUseCase, config.Dashboard.RefreshPeriod)
	if err := dashboardScheduler.InitDashboardScheduleTasks(ctx, true); err != nil {
		log.Fatal("Failed to start dashboard scheduler", zap.Error(err))
	}

	// Start Routes
	go func() {
		address := ":" + strconv.Itoa(config.Server.Port)
		log.Info(msg.GetMessage("app.started", config.ApplicationName, config.Server.Port))
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop", config.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dashboardScheduler.Stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down HTTP server", zap.Error(err))
	}
}
