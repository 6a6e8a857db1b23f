// Package cache holds the request counters behind the API rate limiter.
package cache

import (
	"context"
	"sync"
	"time"
)

// Counter increments key inside a fixed window and reports the new count
// and the time left before the window resets.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Ping(ctx context.Context) error
}

type memoryWindow struct {
	count   int64
	expires time.Time
}

// MemoryCounter is the single-process Counter used when no Redis is
// configured.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

var _ Counter = (*MemoryCounter)(nil)

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (m *MemoryCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.expires) {
		w = &memoryWindow{expires: now.Add(window)}
		m.windows[key] = w
		m.sweep(now)
	}

	w.count++
	return w.count, w.expires.Sub(now), nil
}

// sweep drops expired windows. Called with mu held.
func (m *MemoryCounter) sweep(now time.Time) {
	for k, w := range m.windows {
		if !now.Before(w.expires) {
			delete(m.windows, k)
		}
	}
}

func (m *MemoryCounter) Ping(ctx context.Context) error {
	return nil
}
