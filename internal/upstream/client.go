// Package upstream builds the HTTP clients used to reach the metadata and
// player services and performs the JSON GETs every passthrough endpoint uses.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/failsafehttp"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultBackoff    = 300 * time.Millisecond
	defaultMaxBackoff = 3 * time.Second

	// maxErrorBody bounds how much of an error response is kept for the caller.
	maxErrorBody = 64 << 10
)

// NewHTTPClient creates the HTTP client for one upstream service. The service
// name labels retry and request metrics.
func NewHTTPClient(cfg *config.Config, service string) *http.Client {
	logger := config.GetLogger()

	// Clone DefaultTransport to preserve its pooling, HTTP/2 and dial settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	var transport http.RoundTripper = baseTransport
	if cfg.Retry.MaxRetries > 0 {
		transport = newRetryTransport(baseTransport, service, cfg.Retry.MaxRetries,
			config.ParseDuration("retry.backoff", cfg.Retry.Backoff, defaultBackoff),
			config.ParseDuration("retry.max_backoff", cfg.Retry.MaxBackoff, defaultMaxBackoff),
		)
	}

	return &http.Client{
		Timeout:   config.ParseDuration("client_timeout", cfg.ClientTimeout, defaultTimeout),
		Transport: newCompressionTransport(transport),
	}
}

// newRetryTransport retries 429 and 5xx answers and connection errors with
// exponential backoff, honouring Retry-After when the upstream sends one.
// A Retry-After longer than maxBackoff aborts the retries so the throttled
// answer reaches the caller instead of stalling until the client timeout.
func newRetryTransport(next http.RoundTripper, service string, maxRetries int, backoff, maxBackoff time.Duration) http.RoundTripper {
	logger := config.GetLogger()

	retryPolicy := failsafehttp.NewRetryPolicyBuilder().
		WithMaxRetries(maxRetries).
		WithBackoff(backoff, maxBackoff).
		AbortIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return false
			}
			wait, ok := retryAfter(resp, time.Now())
			return ok && wait > maxBackoff
		}).
		ReturnLastFailure().
		OnAbort(func(e failsafe.ExecutionEvent[*http.Response]) {
			logger.Debug().
				Str("service", service).
				Int("attempt", e.Attempts()).
				Msg("Upstream asked to wait longer than the retry budget, relaying response")
		}).
		OnRetryScheduled(func(e failsafe.ExecutionScheduledEvent[*http.Response]) {
			metrics.UpstreamRetriesTotal.WithLabelValues(service).Inc()
			logger.Debug().
				Str("service", service).
				Int("attempt", e.Attempts()).
				Dur("delay", e.Delay).
				Msg("Retrying upstream request")
		}).
		Build()

	return failsafehttp.NewRoundTripper(next, retryPolicy)
}

// retryAfter reads the Retry-After header of a 429 or 503 answer, accepting
// both delta-seconds and HTTP-date forms.
func retryAfter(resp *http.Response, now time.Time) (time.Duration, bool) {
	if resp == nil || (resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable) {
		return 0, false
	}
	header := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if header == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if at, err := http.ParseTime(header); err == nil {
		return at.Sub(now), true
	}
	return 0, false
}

// GetJSON performs a GET against rawURL and returns the response body when
// the upstream answers 200. Any other status becomes an
// *apperrors.ErrUpstreamStatus carrying the upstream body.
func GetJSON(ctx context.Context, httpClient *http.Client, service, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "error").Inc()
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactQuery(urlErr.URL)
		}
		return nil, fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.NewUpstreamStatusError(service, redactQuery(rawURL), resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", service, err)
	}
	return body, nil
}

// redactQuery strips the query string so API keys never end up in errors or logs.
func redactQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}
