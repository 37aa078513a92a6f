package httpapi

import (
	"net/http"

	"golang.org/x/time/rate"
)

// routeRegistrar registers handlers and labels their request metrics with the route pattern.
type routeRegistrar struct {
	mux      *http.ServeMux
	observer RequestObserver
}

func (r routeRegistrar) handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, RequestMetrics(r.observer, pattern, h))
}

func registerSystemRoutes(routes routeRegistrar, handler *Handler, metricsHandler http.Handler) {
	routes.mux.HandleFunc("GET /{$}", handler.Usage)
	routes.mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		routes.mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerImportRoutes(routes routeRegistrar, handler *Handler, limiter *rate.Limiter) {
	routes.handle("GET /import/importLeague/{leagueCode}", RateLimit(limiter, http.HandlerFunc(handler.ImportLeague)))
}

func registerQueryRoutes(routes routeRegistrar, handler *Handler) {
	routes.handle("GET /query/players/{leagueCode}", http.HandlerFunc(handler.ListLeaguePlayers))
	routes.handle("GET /query/teams/{name}", http.HandlerFunc(handler.GetTeamByName))
}
