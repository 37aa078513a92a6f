package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveImport(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveImport("success", 120*time.Millisecond)
	m.ObserveImport("success", 80*time.Millisecond)
	m.ObserveImport("existing", time.Millisecond)
	m.AddTeamsCreated(2)
	m.AddMembersCreated(3)
	m.AddMembersCreated(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.imports.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imports.WithLabelValues("existing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.teamsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.membersCreated))
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveHTTPRequest("GET /healthz", http.StatusOK)
	m.ObserveProviderFetch("competition", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `league_importer_http_requests_total{route="GET /healthz",status="200"} 1`)
	assert.Contains(t, string(body), `league_importer_provider_fetches_total{endpoint="competition",result="ok"} 1`)
}

func TestMetrics_SetCircuitState(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetCircuitState("football-data", "closed")
	m.SetCircuitState("football-data", "open")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.circuitState.WithLabelValues("football-data", "open")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.circuitState.WithLabelValues("football-data", "closed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.circuitState.WithLabelValues("football-data", "half_open")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveImport("success", time.Second)
		m.AddTeamsCreated(1)
		m.ObserveHTTPRequest("GET /", 200)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
