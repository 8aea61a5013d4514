package nbacdn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
	"github.com/riskibarqy/courtside/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL          = "https://cdn.nba.com/static/json/liveData"
	DefaultScheduleTemplate = "https://data.nba.net/prod/v1/{date}/scoreboard.json"

	todayPath        = "/scoreboard/todaysScoreboard_00.json"
	boxScorePath     = "/boxscore/boxscore_%s.json"
	playByPlayPath   = "/playbyplay/playbyplay_%s.json"
	maxResponseBytes = 6 << 20
)

var errCDNTransient = crerr.New("nba cdn transient failure")

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	ScheduleTemplate string
	Timeout          time.Duration
	MaxRetries       int
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Client fetches raw live-data documents from the NBA CDN.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	scheduleTemplate string
	maxRetries       int
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	flight           singleflight.Group
	backoff          func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	scheduleTemplate := strings.TrimSpace(cfg.ScheduleTemplate)
	if scheduleTemplate == "" {
		scheduleTemplate = DefaultScheduleTemplate
	}

	breaker := cfg.CircuitBreaker.Build()
	breaker.OnTransition(func(from, to resilience.CircuitState) {
		logger.Warn("nba cdn circuit breaker changed state", "from", from.String(), "to", to.String())
	})

	return &Client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		scheduleTemplate: scheduleTemplate,
		maxRetries:       max(cfg.MaxRetries, 0),
		logger:           logger,
		breaker:          breaker,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) FetchTodayScoreboard(ctx context.Context) ([]byte, error) {
	raw, err := c.get(ctx, c.baseURL+todayPath)
	if err != nil {
		return nil, fmt.Errorf("fetch today scoreboard: %w", err)
	}
	return raw, nil
}

// FetchScoreboardByDate fetches the scoreboard of one calendar day, read in
// date's own location.
func (c *Client) FetchScoreboardByDate(ctx context.Context, date time.Time) ([]byte, error) {
	fullURL := strings.ReplaceAll(c.scheduleTemplate, "{date}", date.Format("20060102"))
	raw, err := c.get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard date=%s: %w", date.Format(time.DateOnly), err)
	}
	return raw, nil
}

func (c *Client) FetchBoxScore(ctx context.Context, gameID string) ([]byte, error) {
	gameID, err := cleanGameID(gameID)
	if err != nil {
		return nil, err
	}
	raw, err := c.get(ctx, c.baseURL+fmt.Sprintf(boxScorePath, gameID))
	if err != nil {
		return nil, fmt.Errorf("fetch box score game_id=%s: %w", gameID, err)
	}
	return raw, nil
}

func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) ([]byte, error) {
	gameID, err := cleanGameID(gameID)
	if err != nil {
		return nil, err
	}
	raw, err := c.get(ctx, c.baseURL+fmt.Sprintf(playByPlayPath, gameID))
	if err != nil {
		return nil, fmt.Errorf("fetch play by play game_id=%s: %w", gameID, err)
	}
	return raw, nil
}

// get coalesces concurrent requests for the same URL and runs them through
// the circuit breaker. Only transient failures count against the breaker.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		err := c.breaker.Do(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "nba cdn circuit breaker rejected request", "state", c.breaker.State().String())
			return nil, fmt.Errorf("%w: nba cdn is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errCDNTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errCDNTransient, "read response body: %v", readErr)
			case isMissingStatus(resp.StatusCode):
				return nil, crerr.Wrapf(usecase.ErrNoData, "status=%d", resp.StatusCode)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				if sonic.ConfigStd.Valid(raw) {
					return raw, nil
				}
				lastErr = crerr.Wrapf(errCDNTransient, "invalid json body=%s", abbreviateBody(raw))
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errCDNTransient, "status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("nba cdn request failed")
	}
	c.logger.WarnContext(ctx, "nba cdn request failed", "url", redactURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func cleanGameID(gameID string) (string, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" || strings.ContainsAny(gameID, "/?#") {
		return "", fmt.Errorf("%w: game id %q", usecase.ErrInvalidInput, gameID)
	}
	return gameID, nil
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errCDNTransient)
}

// The CDN answers 403 or 404 for documents it has not published yet.
func isMissingStatus(code int) bool {
	return code == http.StatusNotFound || code == http.StatusForbidden
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.RawQuery = ""
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
