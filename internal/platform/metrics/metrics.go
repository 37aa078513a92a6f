package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "league_importer"

// Metrics holds the process collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	imports         *prometheus.CounterVec
	importDuration  *prometheus.HistogramVec
	teamsCreated    prometheus.Counter
	membersCreated  prometheus.Counter
	httpRequests    *prometheus.CounterVec
	providerFetches *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
}

var circuitStates = []string{"closed", "open", "half_open"}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "leagues_total",
			Help:      "The total number of league imports by outcome",
		}, []string{"outcome"}),
		importDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "League import duration by outcome",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		teamsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "teams_created_total",
			Help:      "The total number of teams created by imports",
		}),
		membersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "members_created_total",
			Help:      "The total number of players and coaches created by imports",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of HTTP requests by route and status",
		}, []string{"route", "status"}),
		providerFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "fetches_total",
			Help:      "The total number of football data API calls by endpoint and result",
		}, []string{"endpoint", "result"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "circuit_state",
			Help:      "1 for the current circuit breaker state of an upstream, 0 otherwise",
		}, []string{"upstream", "state"}),
	}
}

func (m *Metrics) ObserveImport(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(outcome).Inc()
	m.importDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) AddTeamsCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.teamsCreated.Add(float64(n))
}

func (m *Metrics) AddMembersCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.membersCreated.Add(float64(n))
}

func (m *Metrics) ObserveHTTPRequest(route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveProviderFetch(endpoint, result string) {
	if m == nil {
		return
	}
	m.providerFetches.WithLabelValues(endpoint, result).Inc()
}

// SetCircuitState marks state as the only active state of upstream.
func (m *Metrics) SetCircuitState(upstream, state string) {
	if m == nil {
		return
	}
	for _, candidate := range circuitStates {
		value := 0.0
		if candidate == state {
			value = 1
		}
		m.circuitState.WithLabelValues(upstream, candidate).Set(value)
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
