// Package ratelimit throttles repeated actions per key within a fixed window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether another attempt for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// Nop never limits.
type Nop struct{}

func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }
func (Nop) Close() error                                { return nil }

type window struct {
	count int
	end   time.Time
}

// Memory is a process-local fixed-window limiter.
type Memory struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	entries map[string]window
	now     func() time.Time
}

const sweepThreshold = 1024

// NewMemory allows limit attempts per key per period.
func NewMemory(limit int, period time.Duration) *Memory {
	if period <= 0 {
		period = time.Minute
	}
	return &Memory{limit: limit, period: period, entries: make(map[string]window), now: time.Now}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	if m.limit <= 0 {
		return true, nil
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= sweepThreshold {
		for k, w := range m.entries {
			if now.After(w.end) {
				delete(m.entries, k)
			}
		}
	}

	w, ok := m.entries[key]
	if !ok || now.After(w.end) {
		m.entries[key] = window{count: 1, end: now.Add(m.period)}
		return true, nil
	}
	if w.count >= m.limit {
		return false, nil
	}
	w.count++
	m.entries[key] = w
	return true, nil
}

func (m *Memory) Close() error { return nil }
