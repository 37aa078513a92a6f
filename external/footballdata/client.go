package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/riskibarqy/league-importer/internal/platform/resilience"
	"github.com/riskibarqy/league-importer/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL      = "https://api.football-data.org/v4"
	defaultTimeout      = 20 * time.Second
	maxResponseBytes    = 6 << 20
	authHeader          = "X-Auth-Token"
	endpointCompetition = "competition"
	endpointTeams       = "teams"
)

var errTransient = errors.New("football-data transient failure")

// FetchObserver counts provider calls per endpoint and result.
type FetchObserver interface {
	ObserveProviderFetch(endpoint, result string)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
	Observer       FetchObserver
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
	observer   FetchObserver
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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
		observer:   cfg.Observer,
	}
}

func (c *Client) FetchCompetition(ctx context.Context, code string) (usecase.ExternalCompetition, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return usecase.ExternalCompetition{}, errors.Wrap(usecase.ErrInvalidInput, "competition code is required")
	}

	var payload CompetitionResponse
	if err := c.doJSON(ctx, endpointCompetition, "/competitions/"+url.PathEscape(code), &payload); err != nil {
		return usecase.ExternalCompetition{}, err
	}

	return usecase.ExternalCompetition{
		ID:       payload.ID,
		Name:     strings.TrimSpace(payload.Name),
		Code:     strings.TrimSpace(payload.Code),
		AreaName: strings.TrimSpace(payload.Area.Name),
	}, nil
}

func (c *Client) FetchCompetitionTeams(ctx context.Context, competitionID int64) ([]usecase.ExternalTeam, error) {
	if competitionID <= 0 {
		return nil, errors.Wrap(usecase.ErrInvalidInput, "competition id must be greater than zero")
	}

	var payload TeamsResponse
	path := fmt.Sprintf("/competitions/%d/teams", competitionID)
	if err := c.doJSON(ctx, endpointTeams, path, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalTeam, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapTeam(item))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, target any) error {
	// The shared request runs detached from the first caller's cancellation
	// and is bounded by the client timeout; each caller waits on its own ctx.
	results := c.flight.DoChan(path, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
		defer cancel()

		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(sharedCtx, c.baseURL+path)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		c.observe(endpoint, "canceled")
		return ctx.Err()
	case res = <-results:
	}

	out, err := res.Val, res.Err
	if err != nil {
		c.observe(endpoint, fetchResult(err))
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return errors.Wrap(usecase.ErrDependencyUnavailable, "football data provider is temporarily unavailable")
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return errors.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		c.observe(endpoint, "decode_error")
		return errors.Wrap(err, "decode provider payload")
	}
	c.observe(endpoint, "ok")
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set(authHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", err)
		return nil, errors.Mark(errors.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read response body"), errTransient)
	}
	raw := append([]byte(nil), buf.B...)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	apiErr := newAPIError(resp.StatusCode, raw)
	if isRetryableStatus(resp.StatusCode) {
		c.logger.WarnContext(ctx, "football-data upstream failure", "url", fullURL, "status", resp.StatusCode)
		return nil, errors.Mark(apiErr, errTransient)
	}
	return nil, apiErr
}

func (c *Client) observe(endpoint, result string) {
	if c.observer != nil {
		c.observer.ObserveProviderFetch(endpoint, result)
	}
}

// isCircuitFailure keeps provider 4xx answers, such as an unknown league code,
// from opening the breaker.
func isCircuitFailure(err error) bool {
	return errors.Is(err, errTransient)
}

func fetchResult(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return "circuit_open"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("status_%d", apiErr.StatusCode)
	default:
		return "error"
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func mapTeam(item TeamResponse) usecase.ExternalTeam {
	squad := make([]usecase.ExternalMember, 0, len(item.Squad))
	for _, player := range item.Squad {
		squad = append(squad, mapPerson(player))
	}

	return usecase.ExternalTeam{
		ID:        item.ID,
		ShortName: strings.TrimSpace(item.ShortName),
		TLA:       strings.TrimSpace(item.TLA),
		Address:   strings.TrimSpace(item.Address),
		AreaName:  strings.TrimSpace(item.Area.Name),
		Coach:     mapPerson(item.Coach),
		Squad:     squad,
	}
}

func mapPerson(item PersonResponse) usecase.ExternalMember {
	out := usecase.ExternalMember{
		Name:        strings.TrimSpace(item.Name),
		Position:    strings.TrimSpace(item.Position),
		DateOfBirth: parseProviderDate(item.DateOfBirth),
		Nationality: strings.TrimSpace(item.Nationality),
	}
	if item.ID != nil {
		out.ID = *item.ID
	}
	return out
}

// parseProviderDate accepts "2006-01-02" and RFC3339 timestamps.
func parseProviderDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}
