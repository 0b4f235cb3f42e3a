// Package ftcapi is the FTC Events API client. Every request flows through a
// shared minimum-interval limiter, a circuit breaker and request deduplication
// so concurrent sync tasks cannot stampede the upstream.
package ftcapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
	"github.com/ftcstats/ftcstats/internal/platform/ratelimit"
	"github.com/ftcstats/ftcstats/internal/platform/resilience"
	"github.com/ftcstats/ftcstats/internal/usecase"
)

const (
	defaultBaseURL = "https://ftc-api.firstinspires.org/v2.0"

	// The upstream reads FMS-OnlyModifiedSince as a US-style date.
	sinceHeader     = "FMS-OnlyModifiedSince"
	sinceDateLayout = "01/02/2006"

	maxResponseBytes = 16 << 20
)

var errFTCTransient = crerr.New("ftc api transient failure")

// rateLimiter spaces upstream calls. *ratelimit.Limiter satisfies it.
type rateLimiter interface {
	Wait(ctx context.Context) error
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Limiter        *ratelimit.Limiter
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	limiter        rateLimiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter(300 * time.Millisecond)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		limiter:        limiter,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// FetchSeasonEvents lists a season's events. A non-nil since restricts the
// listing to rows the upstream modified after that date.
func (c *Client) FetchSeasonEvents(ctx context.Context, s season.Season, since *time.Time) ([]usecase.ExternalEvent, error) {
	path := fmt.Sprintf("/%d/events", s)
	raw, err := c.get(ctx, path, nil, since)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var envelope eventsEnvelope
	if err := c.decode(raw, &envelope, path, since); err != nil {
		return nil, err
	}
	return mapEvents(envelope.Events), nil
}

// FetchEventMatches lists an event's match schedule and results.
func (c *Client) FetchEventMatches(ctx context.Context, s season.Season, eventCode string) ([]usecase.ExternalMatch, error) {
	path := fmt.Sprintf("/%d/matches/%s", s, url.PathEscape(eventCode))
	raw, err := c.get(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var envelope matchesEnvelope
	if err := c.decode(raw, &envelope, path, nil); err != nil {
		return nil, err
	}
	return mapMatches(envelope.Matches), nil
}

// FetchEventScores lists an event's detailed score payloads, classified into
// traditional and remote items.
func (c *Client) FetchEventScores(ctx context.Context, s season.Season, eventCode string) ([]usecase.ExternalMatchScores, error) {
	path := fmt.Sprintf("/%d/scores/%s", s, url.PathEscape(eventCode))
	raw, err := c.get(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var envelope scoresEnvelope
	if err := c.decode(raw, &envelope, path, nil); err != nil {
		return nil, err
	}
	return mapScores(envelope.MatchScores), nil
}

// get fetches one path. A nil, nil return means the upstream had no data for
// the request, which callers treat as an empty result.
func (c *Client) get(ctx context.Context, path string, query map[string]string, since *time.Time) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ftc api circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: results api is temporarily unavailable", err)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	flightKey := fullURL
	if since != nil {
		flightKey += "|" + since.Format(sinceDateLayout)
	}

	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, since)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFTCTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	// The upstream answers some data-less requests with an empty body or a
	// full HTML error page instead of JSON.
	body := strings.TrimSpace(string(raw))
	if body == "" || strings.HasPrefix(body, "<") {
		return nil, nil
	}
	return []byte(body), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, since *time.Time) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// A retry is a fresh upstream call, so every attempt claims its own
		// limiter slot.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Basic "+c.token)
		if since != nil {
			req.Header.Set(sinceHeader, since.Format(sinceDateLayout))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFTCTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFTCTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: upstream status=%d body=%s", errFTCTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("upstream request failed")
	}
	c.logger.WarnContext(ctx, "ftc api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// decode unmarshals a payload, attaching enough request context to make a
// malformed response debuggable. Decode failures are fatal for the cycle, so
// the diagnostics have to carry everything.
func (c *Client) decode(raw []byte, target any, path string, since *time.Time) error {
	if err := sonic.Unmarshal(raw, target); err != nil {
		wrapped := crerr.Wrapf(err, "decode ftc api payload path=%s", path)
		if since != nil {
			wrapped = crerr.WithDetailf(wrapped, "since=%s", since.Format(sinceDateLayout))
		}
		return crerr.WithDetailf(wrapped, "body=%s", abbreviateBody(raw))
	}
	return nil
}

func (c *Client) sanitize(value string) string {
	if c.token == "" {
		return value
	}
	return strings.ReplaceAll(value, c.token, "REDACTED")
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
