package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/gateway/publisher"
	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/usecase/dashboard"
)

type fakeDashboard struct {
	mutex   sync.Mutex
	current *model.ViewModel
	events  []dashboard.Event
	handled chan dashboard.Event
}

func newFakeDashboard() *fakeDashboard {
	return &fakeDashboard{handled: make(chan dashboard.Event, 4)}
}

func (f *fakeDashboard) Handle(_ context.Context, event dashboard.Event) model.ViewModel {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.events = append(f.events, event)
	viewModel := model.ViewModel{RequestID: "req", Status: model.ViewStatusOK, City: "Mumbai"}
	if selected, ok := event.(dashboard.CitySelected); ok {
		viewModel.City = selected.City
	}
	f.current = &viewModel
	f.handled <- event
	return viewModel
}

func (f *fakeDashboard) Current() (model.ViewModel, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.current == nil {
		return model.ViewModel{}, false
	}
	return *f.current, true
}

func (f *fakeDashboard) Cities() []entity.City {
	return []entity.City{{Name: "Mumbai", Timezone: "Asia/Kolkata"}, {Name: "Delhi", Timezone: "Asia/Kolkata"}}
}

func (f *fakeDashboard) SelectedCity() string { return "Mumbai" }

func (f *fakeDashboard) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

func newTestServer(useCase dashboard.UseCase, subscriber ViewModelSubscriber) *echo.Echo {
	e := echo.New()
	NewDashboardController(e.Group("/weather-dashboard"), useCase, subscriber).InitDashboardRoutes()
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, request)
	return recorder
}

func TestGetViewModelBeforeFirstRefresh(t *testing.T) {
	e := newTestServer(newFakeDashboard(), publisher.NewMemoryPublisher(1))

	recorder := serve(e, http.MethodGet, "/weather-dashboard/dashboard")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "not been refreshed")
}

func TestSelectCityRefreshesAndReturnsViewModel(t *testing.T) {
	useCase := newFakeDashboard()
	e := newTestServer(useCase, publisher.NewMemoryPublisher(1))

	recorder := serve(e, http.MethodPut, "/weather-dashboard/dashboard/city/Delhi")

	require.Equal(t, http.StatusOK, recorder.Code)
	var viewModel model.ViewModel
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &viewModel))
	assert.Equal(t, "Delhi", viewModel.City)
	assert.Equal(t, []dashboard.Event{dashboard.CitySelected{City: "Delhi"}}, useCase.events)

	recorder = serve(e, http.MethodGet, "/weather-dashboard/dashboard")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"city":"Delhi"`)
}

func TestSelectUnknownCity(t *testing.T) {
	useCase := newFakeDashboard()
	e := newTestServer(useCase, publisher.NewMemoryPublisher(1))

	recorder := serve(e, http.MethodPut, "/weather-dashboard/dashboard/city/Gotham")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, useCase.events)
}

func TestFindAllCities(t *testing.T) {
	e := newTestServer(newFakeDashboard(), publisher.NewMemoryPublisher(1))

	recorder := serve(e, http.MethodGet, "/weather-dashboard/dashboard/cities")

	require.Equal(t, http.StatusOK, recorder.Code)
	var cities []entity.City
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cities))
	assert.Len(t, cities, 2)
}

func TestRefreshIsAsynchronous(t *testing.T) {
	useCase := newFakeDashboard()
	e := newTestServer(useCase, publisher.NewMemoryPublisher(1))

	recorder := serve(e, http.MethodPost, "/weather-dashboard/dashboard/refresh")

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	select {
	case event := <-useCase.handled:
		assert.Equal(t, dashboard.TimerTick{}, event)
	case <-time.After(time.Second):
		t.Fatal("refresh was not handled")
	}
}

func TestStreamWritesCurrentViewModelFirst(t *testing.T) {
	useCase := newFakeDashboard()
	useCase.current = &model.ViewModel{RequestID: "req-0", City: "Pune"}
	e := newTestServer(useCase, publisher.NewMemoryPublisher(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	request := httptest.NewRequest(http.MethodGet, "/weather-dashboard/dashboard/stream", nil).WithContext(ctx)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, request)

	assert.Equal(t, "text/event-stream", recorder.Header().Get(echo.HeaderContentType))
	body := recorder.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: view-model\nid: req-0\ndata: {"))
	assert.Contains(t, body, `"city":"Pune"`)
}

func TestStreamForwardsPublishedViewModels(t *testing.T) {
	memory := publisher.NewMemoryPublisher(4)
	server := httptest.NewServer(newTestServer(newFakeDashboard(), memory))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/weather-dashboard/dashboard/stream", nil)
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer func() { _ = response.Body.Close() }()

	require.Eventually(t, func() bool {
		return memory.Health(context.Background()).Details["subscribers"] == "1"
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, memory.Publish(context.Background(), model.ViewModel{RequestID: "req-7", City: "Chennai"}))

	reader := bufio.NewReader(response.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: view-model\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "id: req-7\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"city":"Chennai"`)
}
