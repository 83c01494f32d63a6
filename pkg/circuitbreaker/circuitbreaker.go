package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker is open")

// State of the breaker.
type State int

const (
	StateClosed   State = iota // calls pass through
	StateOpen                  // calls are rejected immediately
	StateHalfOpen              // a limited number of probe calls pass through
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// FailureThreshold: consecutive failures before the breaker opens.
	FailureThreshold int
	// SuccessThreshold: successes in half-open before the breaker closes.
	SuccessThreshold int
	// Timeout: how long the breaker stays open before probing.
	Timeout time.Duration
	// HalfOpenMaxCalls: probe calls allowed while half-open.
	HalfOpenMaxCalls int
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 3,
	}
}

// Breaker trips after a run of failed calls so a dead backend is not
// hammered by every page refresh, then probes its way back to closed.
type Breaker struct {
	cfg Config

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	halfOpenCalls int
	lastChange    time.Time
}

func New(cfg Config) *Breaker {
	return &Breaker{
		cfg:        cfg,
		state:      StateClosed,
		lastChange: time.Now(),
	}
}

// Execute runs fn under breaker protection. A rejected call returns
// ErrOpen without invoking fn.
func (b *Breaker) Execute(fn func() error) error {
	b.mu.Lock()
	b.transition()

	switch b.state {
	case StateOpen:
		b.mu.Unlock()
		return ErrOpen
	case StateHalfOpen:
		if b.halfOpenCalls >= b.cfg.HalfOpenMaxCalls {
			b.mu.Unlock()
			return ErrOpen
		}
		b.halfOpenCalls++
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
	} else {
		b.onSuccess()
	}
	return err
}

// transition applies any time- or count-based state change. Callers hold b.mu.
func (b *Breaker) transition() {
	now := time.Now()
	switch b.state {
	case StateOpen:
		if now.Sub(b.lastChange) >= b.cfg.Timeout {
			b.state = StateHalfOpen
			b.halfOpenCalls = 0
			b.successes = 0
			b.lastChange = now
		}
	case StateHalfOpen:
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = StateClosed
			b.failures = 0
			b.lastChange = now
		}
	case StateClosed:
		if b.failures >= b.cfg.FailureThreshold {
			b.state = StateOpen
			b.lastChange = now
		}
	}
}

func (b *Breaker) onFailure() {
	b.failures++
	if b.state == StateHalfOpen {
		// A failed probe reopens immediately.
		b.state = StateOpen
		b.halfOpenCalls = 0
		b.lastChange = time.Now()
	}
}

func (b *Breaker) onSuccess() {
	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
	}
}

// State reports the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transition()
	return b.state
}

// Reset forces the breaker back to closed.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
	b.halfOpenCalls = 0
	b.lastChange = time.Now()
}
