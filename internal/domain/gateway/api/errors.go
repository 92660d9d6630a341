package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks network failures and timeouts: no HTTP answer was received.
	ErrTransport = errors.New("weather provider unreachable")
	// ErrParse marks a success response whose body does not have the expected shape.
	ErrParse = errors.New("unexpected weather provider response")
)

// ProviderError is a non-success HTTP status returned by the provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather provider returned status %d: %s", e.StatusCode, e.Message)
}
