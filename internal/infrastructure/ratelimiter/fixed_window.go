package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow counts events per key in consecutive windows of a fixed size.
// The chat connections use it to bound inbound frames per session.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	size    time.Duration
	now     func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

func NewFixedWindow(limit int, size time.Duration) *FixedWindow {
	fw := &FixedWindow{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go fw.cleanupLoop()
	return fw
}

// Allow counts one event for key. When the window is exhausted it reports
// false together with the time left until the window resets.
func (fw *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := fw.now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	w, ok := fw.windows[key]
	if !ok || !now.Before(w.resetAt) {
		fw.windows[key] = &window{count: 1, resetAt: now.Add(fw.size)}
		return true, 0
	}

	if w.count >= fw.limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

// Forget drops the window for key, typically when its connection closes.
func (fw *FixedWindow) Forget(key string) {
	fw.mu.Lock()
	delete(fw.windows, key)
	fw.mu.Unlock()
}

func (fw *FixedWindow) cleanupLoop() {
	ticker := time.NewTicker(fw.size)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fw.cleanup()
		case <-fw.done:
			return
		}
	}
}

func (fw *FixedWindow) cleanup() {
	now := fw.now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	for key, w := range fw.windows {
		if !now.Before(w.resetAt) {
			delete(fw.windows, key)
		}
	}
}

func (fw *FixedWindow) Close() {
	fw.closeOnce.Do(func() {
		close(fw.done)
	})
}
