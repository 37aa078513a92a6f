package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var migrationDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

type openFunc func(cmd *cobra.Command) (migrator, error)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migration",
		Short:        "Apply league importer schema migrations",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("dir", "", "Migrations directory (defaults to MIGRATIONS_DIR or ./db/migrations)")
	root.PersistentFlags().String("db-url", "", "Database URL (defaults to DB_URL)")

	open := openMigrator
	root.AddCommand(
		newUpCmd(open),
		newDownCmd(open),
		newVersionCmd(open),
		newForceCmd(open),
		newGotoCmd(open),
	)
	return root
}

func newUpCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, open, func(m migrator) error {
				if err := ignoreNoChange(cmd, m.Up()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func newDownCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one step by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			return withMigrator(cmd, open, func(m migrator) error {
				if err := ignoreNoChange(cmd, m.Steps(-steps)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
				return nil
			})
		},
	}
}

func newVersionCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, open, func(m migrator) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					fmt.Fprintln(cmd.OutOrStdout(), "dirty: false")
					return nil
				}
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "dirty: %t\n", dirty)
				return nil
			})
		},
	}
}

func newForceCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, open, func(m migrator) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force version %d: %w", version, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "forced version to %d\n", version)
				return nil
			})
		},
	}
}

func newGotoCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "goto VERSION",
		Aliases: []string{"migrate"},
		Short:   "Migrate up or down to VERSION",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseTarget(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, open, func(m migrator) error {
				if err := ignoreNoChange(cmd, m.Migrate(target)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrated to version %d\n", target)
				return nil
			})
		},
	}
}

func withMigrator(cmd *cobra.Command, open openFunc, fn func(migrator) error) error {
	m, err := open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			cmd.PrintErrf("close migration source: %v\n", srcErr)
		}
		if dbErr != nil {
			cmd.PrintErrf("close migration db: %v\n", dbErr)
		}
	}()
	return fn(m)
}

func openMigrator(cmd *cobra.Command) (migrator, error) {
	dbURL, _ := cmd.Flags().GetString("db-url")
	if strings.TrimSpace(dbURL) == "" {
		dbURL = os.Getenv("DB_URL")
	}
	dbURL = strings.TrimSpace(dbURL)
	if dbURL == "" {
		return nil, errors.New("DB_URL is required")
	}

	dir, _ := cmd.Flags().GetString("dir")
	migrationsDir, err := resolveMigrationsDir(dir)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsDir), withBinaryParameters(dbURL, envBool("DB_BINARY_PARAMETERS")))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func ignoreNoChange(cmd *cobra.Command, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(cmd.OutOrStdout(), "no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir(flagValue string) (string, error) {
	candidates := append([]string{flagValue, os.Getenv("MIGRATIONS_DIR")}, migrationDirCandidates...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked --dir, MIGRATIONS_DIR, %s)", strings.Join(migrationDirCandidates, ", "))
}

// withBinaryParameters mirrors the API: lib/pq only honours binary_parameters on URL DSNs.
func withBinaryParameters(raw string, enabled bool) string {
	if !enabled {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("binary_parameters") == "" {
		query.Set("binary_parameters", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
