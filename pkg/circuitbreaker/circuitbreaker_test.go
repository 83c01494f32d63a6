package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCall = errors.New("call failed")

func testConfig() Config {
	return Config{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          50 * time.Millisecond,
		HalfOpenMaxCalls: 2,
	}
}

func fail() error    { return errCall }
func succeed() error { return nil }

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	b := New(testConfig())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(fail), errCall)
	}
	assert.Equal(t, StateOpen, b.State())

	err := b.Execute(succeed)
	assert.ErrorIs(t, err, ErrOpen, "open breaker rejects without calling")
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b := New(testConfig())

	require.Error(t, b.Execute(fail))
	require.Error(t, b.Execute(fail))
	require.NoError(t, b.Execute(succeed))
	require.Error(t, b.Execute(fail))
	require.Error(t, b.Execute(fail))

	assert.Equal(t, StateClosed, b.State())
}

func TestHalfOpenProbesThenCloses(t *testing.T) {
	b := New(testConfig())
	for i := 0; i < 3; i++ {
		b.Execute(fail)
	}
	require.Equal(t, StateOpen, b.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestFailedProbeReopens(t *testing.T) {
	b := New(testConfig())
	for i := 0; i < 3; i++ {
		b.Execute(fail)
	}

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	assert.ErrorIs(t, b.Execute(fail), errCall)
	assert.Equal(t, StateOpen, b.State())
}

func TestHalfOpenLimitsProbeCalls(t *testing.T) {
	cfg := testConfig()
	cfg.SuccessThreshold = 10 // keep the breaker half-open during the test
	b := New(cfg)
	for i := 0; i < 3; i++ {
		b.Execute(fail)
	}

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	require.NoError(t, b.Execute(succeed))
	assert.ErrorIs(t, b.Execute(succeed), ErrOpen, "probe budget exhausted")
}

func TestReset(t *testing.T) {
	b := New(testConfig())
	for i := 0; i < 3; i++ {
		b.Execute(fail)
	}
	require.Equal(t, StateOpen, b.State())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Execute(succeed))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}
