package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr   error
	steps   []int
	target  uint
	forced  int
	version uint
	verErr  error
	closed  bool
}

func (f *fakeMigrator) Up() error { return f.upErr }
func (f *fakeMigrator) Steps(n int) error { f.steps = append(f.steps, n); return nil }
func (f *fakeMigrator) Migrate(version uint) error { f.target = version; return nil }
func (f *fakeMigrator) Force(version int) error { f.forced = version; return nil }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, f.verErr }
func (f *fakeMigrator) Close() (error, error) { f.closed = true; return nil, nil }

func runWith(t *testing.T, newCmd func(openFunc) *cobra.Command, m *fakeMigrator, args ...string) string {
	t.Helper()

	cmd := newCmd(func(*cobra.Command) (migrator, error) { return m, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestUpCmd_NoChangeIsNotAnError(t *testing.T) {
	m := &fakeMigrator{upErr: migrate.ErrNoChange}
	out := runWith(t, newUpCmd, m)

	assert.Contains(t, out, "no migration changes")
	assert.True(t, m.closed)
}

func TestDownCmd_DefaultsToOneStep(t *testing.T) {
	m := &fakeMigrator{}
	runWith(t, newDownCmd, m)
	runWith(t, newDownCmd, m, "2")

	assert.Equal(t, []int{-1, -2}, m.steps)
}

func TestVersionCmd(t *testing.T) {
	out := runWith(t, newVersionCmd, &fakeMigrator{verErr: migrate.ErrNilVersion})
	assert.Contains(t, out, "version: none")

	out = runWith(t, newVersionCmd, &fakeMigrator{version: 1})
	assert.Contains(t, out, "version: 1")
}

func TestForceAndGotoCmd(t *testing.T) {
	m := &fakeMigrator{}
	runWith(t, newForceCmd, m, "1")
	runWith(t, newGotoCmd, m, "1")

	assert.Equal(t, 1, m.forced)
	assert.Equal(t, uint(1), m.target)
}

func TestParseArgs(t *testing.T) {
	_, err := parseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = parseVersion("-1")
	assert.Error(t, err)
	_, err = parseTarget("x")
	assert.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sql")
	require.NoError(t, os.Mkdir(nested, 0o755))
	t.Setenv("MIGRATIONS_DIR", "")

	got, err := resolveMigrationsDir(nested)
	require.NoError(t, err)
	assert.Equal(t, nested, got)

	_, err = resolveMigrationsDir(filepath.Join(dir, "missing"))
	if _, statErr := os.Stat("./db/migrations"); statErr != nil {
		assert.Error(t, err)
	}
}

func TestWithBinaryParameters(t *testing.T) {
	assert.Equal(t, "postgres://u:p@localhost/league", withBinaryParameters("postgres://u:p@localhost/league", false))
	assert.Equal(t, "postgres://u:p@localhost/league?binary_parameters=yes", withBinaryParameters("postgres://u:p@localhost/league", true))
	assert.Equal(t, "postgres://u:p@localhost/league?binary_parameters=no", withBinaryParameters("postgres://u:p@localhost/league?binary_parameters=no", true))
	assert.Equal(t, "host=localhost dbname=league", withBinaryParameters("host=localhost dbname=league", true))
}
