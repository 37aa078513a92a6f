package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-importer/internal/app"
	"github.com/riskibarqy/league-importer/internal/config"
	"github.com/riskibarqy/league-importer/internal/observability"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/riskibarqy/league-importer/internal/usecase"
	"github.com/spf13/cobra"
)

type importOptions struct {
	workers int
	pretty  bool
}

// batchRunner is satisfied by *usecase.BatchImporter.
type batchRunner interface {
	Import(ctx context.Context, input usecase.BatchImportInput) (usecase.BatchImportResult, error)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "importer",
		Short:         "Import football-data.org competitions into the league database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newImportCmd(buildRunner))
	return root
}

func newImportCmd(build func(ctx context.Context) (batchRunner, func() error, error)) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:     "import CODE [CODE...]",
		Short:   "Import one or more leagues by code",
		Example: "importer import AR PL --workers 2",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, closeFn, err := build(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeFn()
			}()
			return runImport(ctx, runner, args, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of leagues imported concurrently")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the JSON report")

	return cmd
}

func buildRunner(ctx context.Context) (batchRunner, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// stdout carries the JSON report.
	logger := logging.NewJSONTo(os.Stderr, cfg.LogLevel).With("service", "league-importer-cli")
	logging.SetDefault(logger)

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		_ = telemetry.Shutdown(context.Background())
		return nil, nil, fmt.Errorf("build app: %w", err)
	}

	closeFn := func() error {
		storeErr := container.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return storeErr
	}
	return container.BatchImporter, closeFn, nil
}

// runImport writes a JSON report and fails when any league failed.
func runImport(ctx context.Context, runner batchRunner, codes []string, opts importOptions, out io.Writer) error {
	result, err := runner.Import(ctx, usecase.BatchImportInput{Codes: codes, MaxWorkers: opts.workers})
	if err != nil {
		return err
	}

	var raw []byte
	if opts.pretty {
		raw, err = sonic.ConfigStd.MarshalIndent(result, "", "  ")
	} else {
		raw, err = sonic.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(raw)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d league imports failed", result.FailedCount, len(result.Leagues))
	}
	return nil
}
