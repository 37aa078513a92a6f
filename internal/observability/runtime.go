package observability

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/league-importer/internal/config"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
)

// Runtime owns the process wide telemetry of the API and the importer CLI.
type Runtime struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	profiler        *pyroscope.Profiler
	debugServer     *http.Server
}

// Start brings up tracing, continuous profiling and the pprof listener, each
// only when its config switch is on. A failure stops whatever already started.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	rt.shutdownTracing = startTracing(cfg, rt.logger)

	profiler, err := startProfiler(cfg, rt.logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, errors.Wrap(err, "start pyroscope")
	}
	rt.profiler = profiler

	rt.debugServer = startDebugServer(cfg, rt.logger)
	return rt, nil
}

// Shutdown stops components in reverse start order and reports every failure.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs error
	if r.debugServer != nil {
		if err := r.debugServer.Shutdown(ctx); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "stop pprof server"))
		}
		r.debugServer = nil
	}
	if r.profiler != nil {
		if err := r.profiler.Stop(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "stop pyroscope"))
		}
		r.profiler = nil
	}
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "shutdown tracing"))
		}
		r.shutdownTracing = nil
	}
	return errs
}

// DebugAddr is empty unless the pprof listener runs.
func (r *Runtime) DebugAddr() string {
	if r == nil || r.debugServer == nil {
		return ""
	}
	return r.debugServer.Addr
}
