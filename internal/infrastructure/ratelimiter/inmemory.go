package ratelimiter

import (
	"sync"
	"time"
)

type inMemoryEntry struct {
	value     int
	expiresAt time.Time
}

func (e inMemoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemory is a process-local GetterSetter. Expired entries are invisible to
// Get and swept once a minute.
type InMemory struct {
	mu        sync.RWMutex
	cache     map[string]inMemoryEntry
	now       func() time.Time
	stopClean chan struct{}
	closeOnce sync.Once
}

func NewInMemory() *InMemory {
	im := &InMemory{
		cache:     make(map[string]inMemoryEntry),
		now:       time.Now,
		stopClean: make(chan struct{}),
	}

	go im.sweep(time.Minute)

	return im
}

func (i *InMemory) Get(key string) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	entry, ok := i.cache[key]
	if !ok || entry.expired(i.now()) {
		return 0, ErrCacheMiss
	}

	return entry.value, nil
}

func (i *InMemory) Set(key string, value int) error {
	return i.SetWithExpiration(key, value, 0)
}

func (i *InMemory) SetWithExpiration(key string, value int, expiration time.Duration) error {
	entry := inMemoryEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = i.now().Add(expiration)
	}

	i.mu.Lock()
	i.cache[key] = entry
	i.mu.Unlock()

	return nil
}

func (i *InMemory) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.cache)
}

func (i *InMemory) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			i.removeExpired()
		case <-i.stopClean:
			return
		}
	}
}

func (i *InMemory) removeExpired() {
	now := i.now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for key, entry := range i.cache {
		if entry.expired(now) {
			delete(i.cache, key)
		}
	}
}

func (i *InMemory) Close() error {
	i.closeOnce.Do(func() {
		close(i.stopClean)
	})
	return nil
}
