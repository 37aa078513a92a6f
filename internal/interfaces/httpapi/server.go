package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-importer/internal/platform/id"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	// ImportLimiter guards the import route; nil disables limiting.
	ImportLimiter  *rate.Limiter
	Metrics        RequestObserver
	MetricsHandler http.Handler
	// RequestIDs defaults to random hex ids.
	RequestIDs id.Generator
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	requestIDs := cfg.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewRandomGenerator()
	}

	mux := http.NewServeMux()
	routes := routeRegistrar{mux: mux, observer: cfg.Metrics}
	registerSystemRoutes(routes, handler, cfg.MetricsHandler)
	registerImportRoutes(routes, handler, cfg.ImportLimiter)
	registerQueryRoutes(routes, handler)

	return RequestTracing(RequestLogging(logger, requestIDs, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
