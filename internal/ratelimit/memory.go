package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process sliding-window limiter. Counters are per process,
// so use Redis when running more than one instance.
type Memory struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*clientWindow

	stop     chan struct{}
	stopOnce sync.Once
}

type clientWindow struct {
	timestamps []time.Time
}

// NewMemory creates a limiter allowing max requests per window per key and
// starts a goroutine that drops idle keys. Call Stop to end it.
func NewMemory(max int, window time.Duration) *Memory {
	m := newMemory(max, window, time.Now)
	go m.cleanupLoop(window * 5)
	return m
}

func newMemory(max int, window time.Duration, now func() time.Time) *Memory {
	return &Memory{
		max:     max,
		window:  window,
		now:     now,
		clients: make(map[string]*clientWindow),
		stop:    make(chan struct{}),
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	cw, ok := m.clients[key]
	if !ok {
		cw = &clientWindow{}
		m.clients[key] = cw
	}
	cw.prune(now.Add(-m.window))

	if len(cw.timestamps) >= m.max {
		oldest := cw.timestamps[0]
		return Result{
			Allowed:    false,
			Limit:      m.max,
			Remaining:  0,
			RetryAfter: oldest.Add(m.window).Sub(now),
		}, nil
	}

	cw.timestamps = append(cw.timestamps, now)
	return Result{
		Allowed:   true,
		Limit:     m.max,
		Remaining: m.max - len(cw.timestamps),
	}, nil
}

// prune drops timestamps at or before windowStart; in-place filter on the
// shared backing array.
func (cw *clientWindow) prune(windowStart time.Time) {
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid
}

func (m *Memory) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *Memory) cleanup() {
	windowStart := m.now().Add(-m.window)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, cw := range m.clients {
		cw.prune(windowStart)
		if len(cw.timestamps) == 0 {
			delete(m.clients, key)
		}
	}
}
