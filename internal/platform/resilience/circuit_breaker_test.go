package resilience

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC))
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, clock)

	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	clock.Advance(6 * time.Second)
	require.NoError(t, b.Allow(), "half-open probe should pass")
	assert.Equal(t, CircuitStateHalfOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one probe allowed in half-open")

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second}, clock)

	b.RecordFailure()
	clock.Advance(2 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, clockwork.NewFakeClock())
	notCounted := errors.New("provider said 404")

	err := b.Execute(func() error { return notCounted }, func(error) bool { return false })
	assert.ErrorIs(t, err, notCounted)
	assert.Equal(t, CircuitStateClosed, b.State())

	err = b.Execute(func() error { return errors.New("connection reset") }, nil)
	require.Error(t, err)
	assert.Equal(t, CircuitStateOpen, b.State())
}

func TestCircuitBreaker_DisabledNeverOpens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, clockwork.NewFakeClock())
	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	assert.NoError(t, b.Allow())
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var seen []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		OnStateChange: func(from, to CircuitState) {
			seen = append(seen, string(from)+"->"+string(to))
		},
	}, clock)

	b.RecordFailure()
	clock.Advance(2 * time.Second)
	require.NoError(t, b.Allow())
	b.RecordSuccess()

	assert.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, seen)
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true}.withDefaults()
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.OpenTimeout)
	assert.Equal(t, 1, cfg.HalfOpenMaxReq)
}
