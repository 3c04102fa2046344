package fs

import (
	"sync"
	"time"
)

// selfWrites remembers what the repository itself just wrote so the watcher
// can tell those changes apart from external edits.
type selfWrites struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]selfWrite
}

type selfWrite struct {
	sum string // "" records a deletion
	at  time.Time
}

func newSelfWrites(ttl time.Duration) *selfWrites {
	return &selfWrites{ttl: ttl, entries: make(map[string]selfWrite)}
}

func (s *selfWrites) remember(rel, sum string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[rel] = selfWrite{sum: sum, at: time.Now()}
}

// matches reports whether rel currently holds what was last written to it.
// Entries expire after ttl.
func (s *selfWrites) matches(rel, sum string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.entries[rel]
	if !ok {
		return false
	}
	if time.Since(w.at) > s.ttl {
		delete(s.entries, rel)
		return false
	}
	return w.sum == sum
}
