// Package store keeps completed run exports alive between the analyze
// request and a later download, behind explicit tickets instead of any
// session mechanism.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Result is one stored export with expiration.
type Result struct {
	CSV       []byte
	Filename  string
	ExpiresAt time.Time
}

// IsExpired checks if the stored result has expired.
func (r *Result) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Store provides thread-safe result storage with TTL eviction.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Result
	ttl   time.Duration
}

// New creates a result store with the specified TTL and starts the
// background sweeper.
func New(ttl time.Duration) *Store {
	s := &Store{
		items: make(map[string]*Result),
		ttl:   ttl,
	}

	go s.cleanup()

	return s
}

// cleanup removes expired results periodically.
func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for id, item := range s.items {
			if item.IsExpired() {
				delete(s.items, id)
			}
		}
		s.mu.Unlock()
	}
}

// Put stores an export and returns its ticket ID.
func (s *Store) Put(csvData []byte, filename string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = &Result{
		CSV:       csvData,
		Filename:  filename,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// Get retrieves a stored result by ticket. Expired tickets behave as absent.
func (s *Store) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists || item.IsExpired() {
		return nil, false
	}
	return item, true
}

// Delete removes a stored result.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
}

// Size returns the number of stored results, expired ones included until
// the sweeper runs.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Stats returns store statistics for the metrics endpoint.
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.items)
	expired := 0
	for _, item := range s.items {
		if item.IsExpired() {
			expired++
		}
	}

	return map[string]interface{}{
		"total_results":   total,
		"expired_results": expired,
		"active_results":  total - expired,
		"ttl_seconds":     s.ttl.Seconds(),
	}
}
