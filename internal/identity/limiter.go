package identity

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold bounds the limiter map; entries idle longer than
// pruneAfter are dropped once the map grows past it.
const (
	pruneThreshold = 1024
	pruneAfter     = time.Hour
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per identifier to slow down
// credential stuffing. Each identifier gets its own token bucket.
type LoginLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

// NewLoginLimiter creates a limiter allowing rps sustained attempts
// with the given burst per identifier.
func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether a login attempt for identifier may proceed.
func (l *LoginLimiter) Allow(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.entries[identifier]
	if !ok {
		if len(l.entries) >= pruneThreshold {
			l.prune(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[identifier] = entry
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}

func (l *LoginLimiter) prune(now time.Time) {
	for id, entry := range l.entries {
		if now.Sub(entry.lastSeen) > pruneAfter {
			delete(l.entries, id)
		}
	}
}
