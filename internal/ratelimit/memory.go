package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type window struct {
	hits []time.Time
	// expires is when the newest hit leaves its window.
	expires time.Time
}

// MemoryStore is a single-process sliding window store.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window), now: time.Now}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, length time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	w.prune(now, length)

	if len(w.hits) >= limit {
		return Decision{RetryAfter: w.hits[0].Add(length).Sub(now)}, nil
	}
	w.hits = append(w.hits, now)
	w.expires = now.Add(length)
	return Decision{Allowed: true, Remaining: limit - len(w.hits)}, nil
}

func (w *window) prune(now time.Time, length time.Duration) {
	cutoff := now.Add(-length)
	i := 0
	for i < len(w.hits) && !w.hits[i].After(cutoff) {
		i++
	}
	w.hits = w.hits[i:]
}

// sweep drops idle keys. Caller holds mu.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for key, w := range s.windows {
		if !now.Before(w.expires) {
			delete(s.windows, key)
		}
	}
}
