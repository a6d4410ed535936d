package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	reset time.Time
}

// MemoryStore keeps windows in process. Limits are per instance.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
	sweptAt time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, windows: map[string]*window{}}
}

func (s *MemoryStore) Incr(_ context.Context, key string, d time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now, d)
	w, ok := s.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(d)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.reset, nil
}

func (s *MemoryStore) Decr(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows[key]; ok && s.now().Before(w.reset) && w.count > 0 {
		w.count--
	}
	return nil
}

// sweep drops expired windows at most once per window length.
func (s *MemoryStore) sweep(now time.Time, d time.Duration) {
	if now.Sub(s.sweptAt) < d {
		return
	}
	s.sweptAt = now
	for k, w := range s.windows {
		if !now.Before(w.reset) {
			delete(s.windows, k)
		}
	}
}

func (s *MemoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
