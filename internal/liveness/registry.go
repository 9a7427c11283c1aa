package liveness

import (
	"sync"
	"time"
)

// Registry keeps one Monitor per portal session. The web middleware drives
// it: entering a protected route ensures the session's monitor is Watching,
// logout or session teardown stops and removes it.
type Registry struct {
	prober    Prober
	interval  time.Duration
	onExpired func(sessionID, reason string)

	mu       sync.Mutex
	monitors map[string]*Monitor
}

// NewRegistry creates a monitor registry. onExpired receives the owning
// session ID so the caller can funnel the expiry into the session store.
func NewRegistry(prober Prober, interval time.Duration, onExpired func(sessionID, reason string)) *Registry {
	return &Registry{
		prober:    prober,
		interval:  interval,
		onExpired: onExpired,
		monitors:  make(map[string]*Monitor),
	}
}

// EnsureWatching starts (or resumes) the monitor for a session.
func (r *Registry) EnsureWatching(sessionID, token string) {
	r.monitor(sessionID).Watch(token)
}

// StateOf returns the monitor state for a session; Idle if none exists.
func (r *Registry) StateOf(sessionID string) State {
	r.mu.Lock()
	mon, ok := r.monitors[sessionID]
	r.mu.Unlock()

	if !ok {
		return StateIdle
	}

	return mon.State()
}

// Acknowledge resets an expired monitor after the user accepted the prompt.
func (r *Registry) Acknowledge(sessionID string) {
	r.mu.Lock()
	mon, ok := r.monitors[sessionID]
	r.mu.Unlock()

	if ok {
		mon.Acknowledge()
	}
}

// Stop tears down and removes the monitor for a session.
func (r *Registry) Stop(sessionID string) {
	r.mu.Lock()
	mon, ok := r.monitors[sessionID]
	delete(r.monitors, sessionID)
	r.mu.Unlock()

	if ok {
		mon.Stop()
	}
}

// StopAll tears down every monitor. Used at daemon shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	monitors := make([]*Monitor, 0, len(r.monitors))

	for id, mon := range r.monitors {
		monitors = append(monitors, mon)
		delete(r.monitors, id)
	}
	r.mu.Unlock()

	for _, mon := range monitors {
		mon.Stop()
	}
}

func (r *Registry) monitor(sessionID string) *Monitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	mon, ok := r.monitors[sessionID]
	if !ok {
		id := sessionID
		mon = New(r.prober, r.interval, func(reason string) {
			if r.onExpired != nil {
				r.onExpired(id, reason)
			}
		})
		r.monitors[sessionID] = mon
	}

	return mon
}
