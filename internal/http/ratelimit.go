package http

import (
	"sync"
	"sync/atomic"
	"time"
)

const sweepEvery = 5 * time.Minute

// rateLimiter is a fixed-window counter keyed by client IP.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*bucket

	hits     atomic.Int64
	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	opened time.Time
	count  int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		limit:   limit,
		window:  window,
		clients: map[string]*bucket{},
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *rateLimiter) sweepLoop() {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			rl.cleanupStaleEntries(now)
		case <-rl.done:
			return
		}
	}
}

// cleanupStaleEntries forgets clients idle for ten windows.
func (rl *rateLimiter) cleanupStaleEntries(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-10 * rl.window)
	for ip, b := range rl.clients {
		if b.opened.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.clients[ip]
	if b == nil || now.Sub(b.opened) > rl.window {
		rl.clients[ip] = &bucket{opened: now, count: 1}
		return true
	}
	if b.count++; b.count <= rl.limit {
		return true
	}
	rl.hits.Add(1)
	return false
}

// Hits is the number of rejected requests since start.
func (rl *rateLimiter) Hits() int64 { return rl.hits.Load() }
