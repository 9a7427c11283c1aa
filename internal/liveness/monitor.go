package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInterval is the probe interval used when none is configured.
const DefaultInterval = time.Minute

// State is the monitor's position in its lifecycle.
type State int

const (
	// StateIdle means no protected route is active; the monitor does not run.
	StateIdle State = iota
	// StateWatching means probes are scheduled and no problem is known.
	StateWatching
	// StateExpiredNotified means expiry was detected and surfaced; further
	// probes are suppressed until the user acknowledges.
	StateExpiredNotified
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateWatching:
		return "watching"
	case StateExpiredNotified:
		return "expired_notified"
	default:
		return "idle"
	}
}

// Monitor watches a single session's liveness.
//
// All state transitions happen under one mutex and verdicts are applied in
// completion order. The generation counter makes teardown first-class: every
// Watch and Stop bumps it, and a probe resolving with a stale generation is
// discarded instead of touching the new state.
type Monitor struct {
	prober    Prober
	interval  time.Duration
	onExpired func(reason string)

	mu       sync.Mutex
	state    State
	gen      uint64
	inFlight bool
	cancel   context.CancelFunc
}

// New creates a monitor. onExpired is the single session-writer callback,
// invoked at most once per watch when expiry is detected; it may be nil.
func New(prober Prober, interval time.Duration, onExpired func(reason string)) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Monitor{
		prober:    prober,
		interval:  interval,
		onExpired: onExpired,
	}
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Watch moves the monitor to Watching and starts the probe schedule: one
// probe immediately, then one per interval. Calling Watch on a monitor that
// is already Watching is a no-op; calling it from ExpiredNotified resets
// the machine (the user re-entered a protected route after acknowledging).
func (m *Monitor) Watch(token string) {
	m.mu.Lock()

	if m.state == StateWatching {
		m.mu.Unlock()
		return
	}

	if m.cancel != nil {
		m.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())

	m.state = StateWatching
	m.gen++
	m.inFlight = false
	m.cancel = cancel
	gen := m.gen

	m.mu.Unlock()

	go m.run(ctx, gen, token)
}

// Stop tears the monitor down: the timer is cancelled, any in-flight probe
// is abandoned, and the state returns to Idle.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.state = StateIdle
	m.gen++
	m.inFlight = false
}

// Acknowledge leaves ExpiredNotified after the user accepted the expiry
// prompt and is being routed back to authentication.
func (m *Monitor) Acknowledge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateExpiredNotified {
		return
	}

	m.state = StateIdle
	m.gen++
	m.inFlight = false
}

// run owns the probe schedule for one watch generation.
func (m *Monitor) run(ctx context.Context, gen uint64, token string) {
	m.probe(ctx, gen, token)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx, gen, token)
		}
	}
}

// probe issues a single liveness check unless one is already outstanding.
// Skipping the tick instead of queueing avoids probe pile-up on slow
// networks; the underlying HTTP timeout bounds how long the guard holds.
func (m *Monitor) probe(ctx context.Context, gen uint64, token string) {
	m.mu.Lock()

	if m.gen != gen || m.state != StateWatching || m.inFlight {
		m.mu.Unlock()
		return
	}

	m.inFlight = true
	m.mu.Unlock()

	go func() {
		verdict, reason := m.prober.CheckSession(ctx, token)
		m.apply(gen, verdict, reason)
	}()
}

// apply folds a resolved probe into the state machine.
func (m *Monitor) apply(gen uint64, verdict Verdict, reason string) {
	m.mu.Lock()

	if m.gen != gen {
		// probe outlived its watch; the monitor was torn down or restarted
		m.mu.Unlock()
		return
	}

	m.inFlight = false

	if m.state != StateWatching {
		// ExpiredNotified is monotonic until the machine is reset
		m.mu.Unlock()
		return
	}

	switch verdict {
	case VerdictExpired:
		m.state = StateExpiredNotified

		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}

		onExpired := m.onExpired
		m.mu.Unlock()

		log.Warn().Str("reason", reason).Msg("session expired by backend")

		if onExpired != nil {
			onExpired(reason)
		}
	case VerdictUnknown:
		m.mu.Unlock()

		// transient failure: log and wait for the next tick
		log.Debug().Msg("liveness probe inconclusive")
	default:
		m.mu.Unlock()
	}
}
