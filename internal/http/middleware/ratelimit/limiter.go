package ratelimit

import (
	"sync"
	"time"
)

// Config stores PerClientLimiter settings: at most Limit requests per Window
// for each client key.
type Config struct {
	Limit  int
	Window time.Duration
}

// PerClientLimiter is a token-bucket limiter with one bucket per client key.
// The bucket refills continuously at Limit/Window tokens per second up to a
// capacity of Limit.
type PerClientLimiter struct {
	cfg   Config
	clock Clock

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewPerClientLimiter creates a limiter with an injected clock.
func NewPerClientLimiter(clock Clock, cfg Config) *PerClientLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	return &PerClientLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow returns true if the key is allowed to proceed.
func (l *PerClientLimiter) Allow(key string) bool {
	now := l.clock.Now()
	rate := float64(l.cfg.Limit) / l.cfg.Window.Seconds()
	burst := float64(l.cfg.Limit)

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: burst, last: now}
		l.buckets[key] = b
	}

	if dt := now.Sub(b.last); dt > 0 {
		b.tokens += dt.Seconds() * rate
		if b.tokens > burst {
			b.tokens = burst
		}
		b.last = now
	}

	if b.tokens < 1.0 {
		return false
	}
	b.tokens -= 1.0
	return true
}

var _ Limiter = (*PerClientLimiter)(nil)
