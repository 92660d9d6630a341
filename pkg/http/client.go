package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	dismiss404         bool
	defaultHeaders     map[string]string
	defaultContentType string
	limiter            *rate.Limiter
	logger             HTTPLogger
	redacted           map[string]struct{}
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	Dismiss404          bool
	DefaultHeaders      map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	// ReadTimeout bounds the whole exchange, from dial to the last byte of the body.
	ReadTimeout time.Duration
	// RequestsPerSecond enables client side rate limiting when greater than zero.
	RequestsPerSecond float64
	Burst             int
	Logger            HTTPLogger
	// RedactedParams lists query parameters whose values never leave the client inside returned errors.
	RedactedParams []string
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		dismiss404:         opts.Dismiss404,
		defaultHeaders:     opts.DefaultHeaders,
		defaultContentType: opts.DefaultContentType,
		limiter:            limiter,
		logger:             opts.Logger,
		redacted:           paramSet(opts.RedactedParams),
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doRequest builds the URL, waits for the rate limiter, executes the request and decodes the response
// into successResp or errorResp depending on the status code.
// A zero status code in the result means the request never got an HTTP answer.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams url.Values, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	fullURL := hc.buildURL(path)
	if len(queryParams) > 0 {
		fullURL += "?" + queryParams.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, nil, 0, err
	}

	req.Header.Set("Accept", hc.defaultContentType)
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if hc.limiter != nil {
		if err := hc.limiter.Wait(ctx); err != nil {
			return nil, nil, 0, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if hc.logger != nil {
		hc.logger.LogRequest(method, fullURL, headers)
	}

	start := time.Now()
	resp, err := hc.client.Do(req)
	if err != nil {
		err = hc.scrubURLError(err)
		hc.logError(method, fullURL, 0, "", start, err)
		return nil, nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		hc.logError(method, fullURL, 0, "", start, err)
		return nil, nil, 0, err
	}

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil {
			if err := hc.unmarshalResponse(bodyBytes, respContentType, successResp); err != nil {
				hc.logError(method, fullURL, resp.StatusCode, string(bodyBytes), start, err)
				return nil, nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		if hc.logger != nil {
			hc.logger.LogResponseSuccess(method, fullURL, resp.StatusCode, time.Since(start).Milliseconds())
		}
		return successResp, nil, resp.StatusCode, nil
	}

	if resp.StatusCode == http.StatusNotFound && hc.dismiss404 {
		return nil, nil, resp.StatusCode, nil
	}

	httpErr := fmt.Errorf("http error: status %d", resp.StatusCode)
	hc.logError(method, fullURL, resp.StatusCode, string(bodyBytes), start, httpErr)

	if errorResp != nil {
		// an undecodable error body still reports the status
		if err := hc.unmarshalResponse(bodyBytes, respContentType, errorResp); err != nil {
			return nil, nil, resp.StatusCode, httpErr
		}
	}

	return nil, errorResp, resp.StatusCode, httpErr
}

// scrubURLError masks redacted query parameters in the URL carried by a *url.Error
func (hc *Client) scrubURLError(err error) error {
	var urlErr *url.Error
	if len(hc.redacted) == 0 || !errors.As(err, &urlErr) {
		return err
	}
	urlErr.URL = redactURL(urlErr.URL, hc.redacted)
	return err
}

func (hc *Client) logError(method, fullURL string, status int, body string, start time.Time, err error) {
	if hc.logger != nil {
		hc.logger.LogResponseError(method, fullURL, status, body, time.Since(start).Milliseconds(), err)
	}
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}
