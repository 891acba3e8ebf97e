// Package revocation holds the set of bearer tokens invalidated by logout.
// The set is advisory and bounded: above the capacity ceiling it is cleared
// wholesale, trading strict revocation for a hard memory cap. Acceptable for
// a single-process deployment; a multi-instance one needs a shared store.
package revocation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/api/metrics"
)

const (
	defaultCapacity = 10000
	// sweepHighWater is the occupancy fraction above which Sweep clears the set.
	sweepHighWater = 0.9

	defaultSweepInterval = time.Hour
)

// Store is a bounded, concurrency-safe set of revoked token strings. The zero
// value is not usable; construct with New.
type Store struct {
	mu       sync.RWMutex
	tokens   map[string]struct{}
	capacity int
	log      zerolog.Logger
}

// New returns a Store with the given capacity ceiling. If capacity <= 0 the
// default is used.
func New(capacity int, log zerolog.Logger) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{
		tokens:   make(map[string]struct{}),
		capacity: capacity,
		log:      log,
	}
}

// Add inserts a token into the revoked set. Blank input is a no-op. Inserting
// an already-present token is a no-op success. When the set is at capacity the
// entire set is cleared first; previously revoked tokens become valid again,
// which is the documented cost of the memory bound.
func (s *Store) Add(token string) {
	if strings.TrimSpace(token) == "" {
		s.log.Warn().Msg("attempted to revoke blank token")
		return
	}

	s.mu.Lock()
	if len(s.tokens) >= s.capacity {
		s.log.Warn().Int("size", len(s.tokens)).Msg("revocation store full, clearing")
		s.tokens = make(map[string]struct{})
		metrics.RevocationStoreClears.Inc()
	}
	_, present := s.tokens[token]
	s.tokens[token] = struct{}{}
	size := len(s.tokens)
	s.mu.Unlock()

	metrics.RevocationStoreSize.Set(float64(size))
	if !present {
		metrics.TokensRevokedTotal.Inc()
		s.log.Info().Str("token", preview(token)).Msg("token revoked")
	}
}

// Contains reports whether a token has been revoked. Blank input reports true:
// a malformed extraction must never pass the gate.
func (s *Store) Contains(token string) bool {
	if strings.TrimSpace(token) == "" {
		return true
	}

	s.mu.RLock()
	_, ok := s.tokens[token]
	s.mu.RUnlock()
	return ok
}

// Len returns the current number of revoked tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// Sweep clears the set once occupancy exceeds the high-water mark, otherwise
// it is a no-op. It holds the lock only for the map swap, never across I/O.
func (s *Store) Sweep() {
	s.mu.Lock()
	size := len(s.tokens)
	cleared := false
	if float64(size) > float64(s.capacity)*sweepHighWater {
		s.tokens = make(map[string]struct{})
		cleared = true
	}
	s.mu.Unlock()

	if cleared {
		metrics.RevocationStoreClears.Inc()
		metrics.RevocationStoreSize.Set(0)
		s.log.Warn().Int("size", size).Msg("revocation store swept")
	}
}

// StartSweeper launches the periodic maintenance goroutine. It runs until ctx
// is cancelled and is independent of request traffic. If interval <= 0 the
// default is used.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// preview returns a loggable fragment of a token, never the whole value.
func preview(token string) string {
	if len(token) <= 8 {
		return "[short-token]"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
