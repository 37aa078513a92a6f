package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/league-importer/internal/config"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return noop
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Warn("tracing disabled", "reason", "no uptrace dsn configured")
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("tracing exported to uptrace", "service", cfg.ServiceName, "version", cfg.ServiceVersion)

	return uptrace.Shutdown
}
