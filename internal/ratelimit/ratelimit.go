// Package ratelimit implements the per-client sliding-window admission gate
// for the expensive endpoints (start-game, ask-question).
package ratelimit

import (
	"sync"
	"time"

	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

// Limiter keeps an ordered timestamp ledger per client and admits at most
// max requests per rolling window. Entries older than the window are pruned
// lazily on each check; a rejected attempt is not recorded.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	clients map[string][]time.Time
	now     func() time.Time
}

func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// SetClock overrides the limiter's time source. Tests only.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// Allow prunes the client's ledger and admits the request if fewer than max
// remain in the window, recording the admission timestamp.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.clients[key][:0]
	for _, ts := range l.clients[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.clients[key] = recent
		return false
	}

	l.clients[key] = append(recent, now)
	return true
}

// Len reports how many clients currently hold a ledger entry.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Cleanup drops clients whose entire ledger has aged out of the window plus
// ttl. Called periodically so the map does not grow with one entry per IP
// ever seen.
func (l *Limiter) Cleanup(ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window - ttl)
	removed := 0
	for key, ledger := range l.clients {
		if len(ledger) == 0 || !ledger[len(ledger)-1].After(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	if removed > 0 {
		util.LogInfo("Cleaned up %d stale rate-limit ledgers", removed)
	}
}
