package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/riskibarqy/league-importer/internal/platform/resilience"
	"github.com/riskibarqy/league-importer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL + "/v4/",
		Token:          "secret-token",
		Timeout:        time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
		Clock:          clockwork.NewFakeClock(),
	})
}

func disabledBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{Enabled: false}
}

func TestClient_FetchCompetition(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/competitions/AR", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		_, _ = w.Write([]byte(`{"id":10,"name":"Liga Profesional","code":"AR","area":{"name":"Argentina"}}`))
	}, disabledBreaker())

	got, err := client.FetchCompetition(context.Background(), "AR")
	require.NoError(t, err)
	assert.Equal(t, usecase.ExternalCompetition{ID: 10, Name: "Liga Profesional", Code: "AR", AreaName: "Argentina"}, got)
}

func TestClient_FetchCompetitionTeams_MapsSquadAndCoach(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/competitions/10/teams", r.URL.Path)
		_, _ = w.Write([]byte(`{"teams":[
			{"id":2,"shortName":"Boca","tla":"BOC","address":"Brandsen 805","area":{"name":"Argentina"},
			 "coach":{"id":null,"name":"Coach Two","dateOfBirth":"1970-01-02","nationality":"Argentina"},"squad":[]},
			{"id":3,"shortName":"River","tla":"RIV","address":"Figueroa Alcorta","area":{"name":"Argentina"},
			 "coach":{"id":30,"name":"Coach Three"},
			 "squad":[{"id":11,"name":"Player Eleven","position":"Forward","dateOfBirth":"1990-10-11","nationality":"Argentina"}]},
			{"id":0,"shortName":"ignored"}
		]}`))
	}, disabledBreaker())

	got, err := client.FetchCompetitionTeams(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].ID)
	assert.Empty(t, got[0].Squad)
	assert.Equal(t, int64(0), got[0].Coach.ID)
	require.NotNil(t, got[0].Coach.DateOfBirth)
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), *got[0].Coach.DateOfBirth)

	assert.Equal(t, "RIV", got[1].TLA)
	assert.Equal(t, int64(30), got[1].Coach.ID)
	assert.Nil(t, got[1].Coach.DateOfBirth)
	require.Len(t, got[1].Squad, 1)
	assert.Equal(t, int64(11), got[1].Squad[0].ID)
	assert.Equal(t, "Forward", got[1].Squad[0].Position)
}

func TestClient_ProviderErrorsKeepPayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		status    int
		body      string
		wantCode  int
		wantError int
	}{
		{name: "malformed code", status: http.StatusBadRequest, body: `{"message":"Bad code","errorCode":400}`, wantCode: 400},
		{name: "unknown code", status: http.StatusNotFound, body: `{"error":404,"message":"Not found"}`, wantError: 404},
		{name: "non json body", status: http.StatusForbidden, body: `forbidden`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, disabledBreaker())

			_, err := client.FetchCompetition(context.Background(), "XX")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.HTTPStatus())
			assert.Equal(t, tc.wantCode, apiErr.ProviderErrorCode())
			assert.Equal(t, tc.wantError, apiErr.ProviderErrorStatus())
			assert.Equal(t, tc.body, string(apiErr.Body))
		})
	}
}

func TestClient_CircuitBreakerOpensOnUpstreamFailuresOnly(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(int(status.Load()))
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.FetchCompetition(ctx, "XX")
		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	}

	status.Store(http.StatusBadGateway)
	for i := 0; i < 2; i++ {
		_, err := client.FetchCompetition(ctx, "XX")
		require.Error(t, err)
	}
	before := calls.Load()

	_, err := client.FetchCompetition(ctx, "XX")
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, before, calls.Load())
}

func TestClient_InvalidInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := client.FetchCompetition(context.Background(), "  ")
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
	_, err = client.FetchCompetitionTeams(context.Background(), 0)
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
}

func TestParseProviderDate(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseProviderDate(""))
	assert.Nil(t, parseProviderDate("not-a-date"))
	got := parseProviderDate("1990-10-11T00:00:00Z")
	require.NotNil(t, got)
	assert.Equal(t, "1990-10-11", got.Format(time.DateOnly))
}

func TestClient_SharedRequestSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(`{"id":10,"name":"Liga Profesional","code":"AR","area":{"name":"Argentina"}}`))
	}, disabledBreaker())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := client.FetchCompetition(firstCtx, "AR")
		firstDone <- err
	}()
	<-started

	type result struct {
		competition usecase.ExternalCompetition
		err         error
	}
	secondDone := make(chan result, 1)
	go func() {
		got, err := client.FetchCompetition(context.Background(), "AR")
		secondDone <- result{competition: got, err: err}
	}()

	cancelFirst()
	assert.True(t, errors.Is(<-firstDone, context.Canceled))

	close(release)
	second := <-secondDone
	require.NoError(t, second.err)
	assert.Equal(t, int64(10), second.competition.ID)
	assert.LessOrEqual(t, calls.Load(), int32(2))
}
