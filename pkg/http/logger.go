package http

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, httpStatus int, latency int64)

	// LogResponseError is called after a transport failure (httpStatus 0), an error status or an undecodable body
	LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapLogger writes outbound calls to the application log, masking the values of sensitive query parameters.
type ZapLogger struct {
	sensitive map[string]struct{}
}

var _ HTTPLogger = (*ZapLogger)(nil)

// NewZapLogger creates a logger that masks the given query parameters (for example "appid").
func NewZapLogger(sensitiveParams ...string) *ZapLogger {
	return &ZapLogger{sensitive: paramSet(sensitiveParams)}
}

func (l *ZapLogger) LogRequest(method, rawURL string, _ map[string]string) {
	log.Debug(msg.GetMessage("provider.request", method, l.Redact(rawURL)))
}

func (l *ZapLogger) LogResponseSuccess(method, rawURL string, httpStatus int, latency int64) {
	log.Info(msg.GetMessage("provider.response", method, l.Redact(rawURL), httpStatus, latency),
		zap.String("method", method),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
	)
}

func (l *ZapLogger) LogResponseError(method, rawURL string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn(msg.GetMessage("provider.response-error", method, l.Redact(rawURL), httpStatus, latency, err),
		zap.String("method", method),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("body", responseBody),
		zap.Error(err),
	)
}

// Redact replaces the value of every sensitive query parameter in rawURL with "REDACTED".
func (l *ZapLogger) Redact(rawURL string) string {
	return redactURL(rawURL, l.sensitive)
}

func paramSet(params []string) map[string]struct{} {
	set := make(map[string]struct{}, len(params))
	for _, param := range params {
		set[strings.ToLower(param)] = struct{}{}
	}
	return set
}

func redactURL(rawURL string, sensitive map[string]struct{}) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for key := range query {
		if _, ok := sensitive[strings.ToLower(key)]; ok {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
