package draftapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL   = "https://draft.premierleague.com/api"
	DefaultUserAgent = "draft-league-dashboard/1.0"
	defaultTimeout   = 15 * time.Second
	maxBodyBytes     = 6 << 20
)

var errTransient = crerr.New("draft api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads league details from the public FPL Draft API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

var _ draftleague.Source = (*Client)(nil)

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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("draft api circuit state changed", "from", from, "to", to)
		}
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

// FetchDetails performs one GET of /league/{id}/details. Any non-200 status,
// transport error or undecodable body is reported as usecase.ErrFetchFailure;
// no partial document is ever returned.
func (c *Client) FetchDetails(ctx context.Context, leagueID string) (draftleague.Snapshot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return draftleague.Snapshot{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	path := "/league/" + url.PathEscape(leagueID) + "/details"
	raw, err := c.doGet(ctx, path)
	if err != nil {
		return draftleague.Snapshot{}, err
	}

	var details draftleague.Details
	if err := sonic.Unmarshal(raw, &details); err != nil {
		c.logger.WarnContext(ctx, "draft api payload decode failed", "league_id", leagueID, "error", err)
		return draftleague.Snapshot{}, fmt.Errorf("%w: decode league_id=%s: %v", usecase.ErrFetchFailure, leagueID, err)
	}

	return draftleague.Snapshot{
		LeagueID:  leagueID,
		Details:   details,
		FetchedAt: c.now().UTC(),
	}, nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "draft api circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: draft api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrFetchFailure, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected response payload type %T", usecase.ErrFetchFailure, out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		c.logger.WarnContext(ctx, "draft api request failed", "url", fullURL, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(limitReader(resp.Body)); err != nil {
		err = crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
		c.logger.WarnContext(ctx, "draft api request failed", "url", fullURL, "error", err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err := crerr.Newf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			err = crerr.Mark(err, errTransient)
		}
		c.logger.WarnContext(ctx, "draft api request failed", "url", fullURL, "status", resp.StatusCode, "error", err)
		return nil, err
	}

	// buf returns to the pool on exit.
	return append([]byte(nil), buf.B...), nil
}
