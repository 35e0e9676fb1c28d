package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/metrics"
)

// Response is a fully read upstream answer
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs GET requests against one upstream provider.
// Every call is recorded in the provider metrics.
type Client struct {
	provider   string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a provider client. A zero timeout leaves requests bounded only
// by their context.
func New(provider string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.L()
	}
	return &Client{
		provider:   provider,
		httpClient: newHTTPClient(timeout),
		logger:     log,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Get requests baseURL with params and reads the whole body. Non-2xx answers
// are returned without error; only building, sending or reading fails.
// Errors never contain the request URL, whose query carries credentials.
func (c *Client) Get(ctx context.Context, endpoint, baseURL string, params url.Values) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		callErr := err
		if callErr == nil && !resp.OK() {
			callErr = fmt.Errorf("http %d", resp.StatusCode)
		}
		metrics.ObserveProviderCall(c.provider, endpoint, start, callErr)
	}()

	log := c.logger.WithContext(ctx)

	reqURL := baseURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.provider, stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		err = stripURL(err)
		log.Error("upstream request failed",
			zap.String("provider", c.provider),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", c.provider, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	log.Debug("upstream response",
		zap.String("provider", c.provider),
		zap.String("endpoint", endpoint),
		zap.Int("status", httpResp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return &Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

// stripURL drops the URL from *url.Error, keeping the operation and cause
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", strings.ToLower(urlErr.Op), urlErr.Err)
	}
	return err
}
