package http

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string  `json:"name"`
	Temp float64 `json:"temp"`
}

type apiError struct {
	Cod     string `json:"cod"`
	Message string `json:"message"`
}

type recordingLogger struct {
	mu        sync.Mutex
	requests  []string
	successes []int
	failures  []int
	errors    []error
}

func (r *recordingLogger) LogRequest(_, url string, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, url)
}

func (r *recordingLogger) LogResponseSuccess(_, _ string, httpStatus int, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, httpStatus)
}

func (r *recordingLogger) LogResponseError(_, _ string, httpStatus int, _ string, _ int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, httpStatus)
	r.errors = append(r.errors, err)
}

func TestExecuteDecodesJSONAndEncodesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "19.076", r.URL.Query().Get("lat"))
		assert.Equal(t, "a b&c", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"name":"Mumbai","temp":29.5}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL+"/data/2.5/", ClientOptions{Logger: logger})

	success, errResp, status, err := client.Request().
		WithPath("weather").
		WithQueryParam("lat", "19.076").
		WithQueryParams(map[string]string{"q": "a b&c"}).
		WithSuccessResp(&payload{}).
		WithErrorResp(&apiError{}).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, errResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, &payload{Name: "Mumbai", Temp: 29.5}, success)
	assert.Len(t, logger.requests, 1)
	assert.Equal(t, []int{http.StatusOK}, logger.successes)
}

func TestExecuteReturnsErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":"401","message":"Invalid API key"}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{Logger: logger})

	success, errResp, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&payload{}).
		WithErrorResp(&apiError{}).
		Execute(context.Background())

	require.Error(t, err)
	assert.Nil(t, success)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, errResp)
	assert.Equal(t, "Invalid API key", errResp.(*apiError).Message)
	assert.Equal(t, []int{http.StatusUnauthorized}, logger.failures)
}

func TestExecuteReportsDecodeFailureWithStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, _, status, err := client.Request().WithPath("/weather").WithSuccessResp(&payload{}).Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestExecuteTransportFailureHasZeroStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{ReadTimeout: 20 * time.Millisecond})
	_, _, status, err := client.Request().WithPath("/slow").WithSuccessResp(&payload{}).Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, status)
}

func TestExecuteTransportFailureMasksRedactedParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{
		ReadTimeout:    20 * time.Millisecond,
		Logger:         logger,
		RedactedParams: []string{"appid"},
	})
	_, _, status, err := client.Request().
		WithPath("/weather").
		WithQueryParam("appid", "SECRET123").
		WithQueryParam("lat", "1").
		WithSuccessResp(&payload{}).
		Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, status)
	assert.NotContains(t, err.Error(), "SECRET123")
	assert.Contains(t, err.Error(), "appid=REDACTED")

	logger.mu.Lock()
	defer logger.mu.Unlock()
	require.Len(t, logger.errors, 1)
	assert.NotContains(t, logger.errors[0].Error(), "SECRET123")
}

func TestExecuteDismisses404(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{Dismiss404: true})
	success, errResp, status, err := client.Request().WithPath("/missing").WithSuccessResp(&payload{}).Execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, success)
	assert.Nil(t, errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExecuteDecodesLatin1XML(t *testing.T) {
	type station struct {
		XMLName xml.Name `xml:"current"`
		City    string   `xml:"city"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		body := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><current><city>S`), 0xE3, 'o', ' ', 'P', 'a', 'u', 'l', 'o')
		body = append(body, []byte(`</city></current>`)...)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	success, _, _, err := client.Request().WithPath("/weather").WithSuccessResp(&station{}).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "São Paulo", success.(*station).City)
}

func TestExecuteHonoursRateLimiterContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{RequestsPerSecond: 0.001, Burst: 1})

	_, _, _, err := client.Request().WithPath("/a").Execute(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, _, status, err := client.Request().WithPath("/b").Execute(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, status)
}

func TestExecuteRequiresClient(t *testing.T) {
	request := &Request{requestMethod: GET, requestPath: "/"}
	_, _, _, err := request.Execute(context.Background())
	assert.Error(t, err)
}

func TestZapLoggerRedactsSensitiveParams(t *testing.T) {
	logger := NewZapLogger("appid")

	redacted := logger.Redact("https://api.openweathermap.org/data/2.5/weather?appid=secret&lat=1&units=metric")

	assert.NotContains(t, redacted, "secret")
	assert.Contains(t, redacted, "appid=REDACTED")
	assert.Contains(t, redacted, "lat=1")
	assert.Equal(t, "not a url%", logger.Redact("not a url%"))
}
