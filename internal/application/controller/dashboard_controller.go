package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/pkg/msg"
)

const viewModelEvent = "view-model"

// ViewModelSubscriber streams every published view model until the returned cancel function is called
type ViewModelSubscriber interface {
	Subscribe() (<-chan model.ViewModel, func())
}

type DashboardController struct {
	api        *echo.Group
	useCase    dashboard.UseCase
	subscriber ViewModelSubscriber
}

func NewDashboardController(api *echo.Group, useCase dashboard.UseCase, subscriber ViewModelSubscriber) *DashboardController {
	return &DashboardController{api: api, useCase: useCase, subscriber: subscriber}
}

// InitDashboardRoutes initializes dashboard routes
func (controller *DashboardController) InitDashboardRoutes() {
	controller.api.GET("/dashboard", controller.GetViewModel)
	controller.api.GET("/dashboard/cities", controller.FindAllCities)
	controller.api.GET("/dashboard/stream", controller.StreamViewModels)
	controller.api.PUT("/dashboard/city/:city", controller.SelectCity)
	controller.api.POST("/dashboard/refresh", controller.Refresh)
}

// GetViewModel godoc
// @Summary Get the current dashboard
// @Description Latest view model published by the dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.ViewModel
// @Failure 404 {object} map[string]string "Dashboard not refreshed yet"
// @Router /dashboard [get]
func (controller *DashboardController) GetViewModel(c echo.Context) error {
	viewModel, ok := controller.useCase.Current()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": msg.GetMessage("dashboard.no-view-model")})
	}
	return c.JSON(http.StatusOK, viewModel)
}

// FindAllCities godoc
// @Summary Get selectable cities
// @Tags dashboard
// @Produce json
// @Success 200 {array} entity.City
// @Router /dashboard/cities [get]
func (controller *DashboardController) FindAllCities(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.Cities())
}

// SelectCity godoc
// @Summary Select a city
// @Description Switch the dashboard to a city and refresh it synchronously
// @Tags dashboard
// @Produce json
// @Param city path string true "City name"
// @Success 200 {object} model.ViewModel
// @Failure 404 {object} map[string]string "City not found"
// @Router /dashboard/city/{city} [put]
func (controller *DashboardController) SelectCity(c echo.Context) error {
	city := c.Param("city")
	if !controller.isKnownCity(city) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": msg.GetMessage("dashboard.city-not-found")})
	}

	viewModel := controller.useCase.Handle(c.Request().Context(), dashboard.CitySelected{City: city})
	return c.JSON(http.StatusOK, viewModel)
}

// Refresh godoc
// @Summary Refresh the selected city
// @Description Schedule an immediate refresh, the result is published to subscribers
// @Tags dashboard
// @Produce json
// @Success 202 {object} map[string]string
// @Router /dashboard/refresh [post]
func (controller *DashboardController) Refresh(c echo.Context) error {
	ctx := context.WithoutCancel(c.Request().Context())
	// Execute in a separate goroutine to avoid blocking the request
	go func() {
		controller.useCase.Handle(ctx, dashboard.TimerTick{})
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"message": msg.GetMessage("dashboard.refresh-scheduled")})
}

// StreamViewModels godoc
// @Summary Stream dashboard updates
// @Description Server-sent events, one view-model event per publish, starting with the current view model
// @Tags dashboard
// @Produce text/event-stream
// @Router /dashboard/stream [get]
func (controller *DashboardController) StreamViewModels(c echo.Context) error {
	updates, cancel := controller.subscriber.Subscribe()
	defer cancel()

	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)

	if viewModel, ok := controller.useCase.Current(); ok {
		if err := writeEvent(response, viewModel); err != nil {
			return nil
		}
	}
	response.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case viewModel, open := <-updates:
			if !open {
				return nil
			}
			if err := writeEvent(response, viewModel); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func (controller *DashboardController) isKnownCity(name string) bool {
	for _, city := range controller.useCase.Cities() {
		if city.Name == name {
			return true
		}
	}
	return false
}

func writeEvent(response *echo.Response, viewModel model.ViewModel) error {
	data, err := json.Marshal(viewModel)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(response, "event: %s\nid: %s\ndata: %s\n\n", viewModelEvent, viewModel.RequestID, data)
	return err
}
