package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/draft-league-dashboard/internal/platform/resilience"
)

// Entry is a cached value together with the time it was stored.
type Entry struct {
	Value    any
	StoredAt time.Time
}

// Store is an in-process keyed cache. A ttl of zero keeps entries until they
// are invalidated explicitly.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	gens    map[string]uint64
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl < 0 {
		ttl = 0
	}
	return &Store{
		entries: make(map[string]Entry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Get(_ context.Context, key string) (Entry, bool) {
	if key == "" {
		return Entry{}, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.StoredAt.Equal(e.StoredAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Entry{}, false
	}

	return e, true
}

func (s *Store) Set(_ context.Context, key string, value any) Entry {
	e := Entry{Value: value, StoredAt: s.now()}
	if key == "" {
		return e
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return e
}

// Invalidate drops key and detaches any load in flight for it, so the next
// GetOrLoad goes back to the loader. A detached load still returns its value
// to its own callers but no longer stores it.
func (s *Store) Invalidate(_ context.Context, key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	_, existed := s.entries[key]
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
	s.flight.Forget(key)

	return existed
}

func (s *Store) InvalidatePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	removed := 0
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	for key := range s.gens {
		if strings.HasPrefix(key, prefix) {
			s.gens[key]++
			s.flight.Forget(key)
		}
	}
	s.mu.Unlock()

	return removed
}

// Keys lists live keys in lexical order.
func (s *Store) Keys(_ context.Context) []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.entries))
	for key, e := range s.entries {
		if s.expired(e) {
			continue
		}
		out = append(out, key)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

// GetOrLoad returns the cached entry for key or stores the loader's result.
// hit is true only when the value was already cached. Loader errors are never
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (entry Entry, hit bool, err error) {
	if loader == nil {
		return Entry{}, false, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, err := loader(ctx)
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Value: value, StoredAt: s.now()}, false, nil
	}

	if e, ok := s.Get(ctx, key); ok {
		return e, true, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		gen := s.generation(key)
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		return s.setIfCurrent(key, loaded, gen), nil
	})
	if err != nil {
		return Entry{}, false, err
	}

	e, _ := out.(Entry)
	return e, false, nil
}

// generation returns the invalidation count for key and starts tracking it so
// InvalidatePrefix can reach loads that have not stored anything yet.
func (s *Store) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen, ok := s.gens[key]
	if !ok {
		s.gens[key] = 0
	}
	return gen
}

// setIfCurrent stores value unless key was invalidated after gen was read.
func (s *Store) setIfCurrent(key string, value any, gen uint64) Entry {
	e := Entry{Value: value, StoredAt: s.now()}

	s.mu.Lock()
	if s.gens[key] == gen {
		s.entries[key] = e
	}
	s.mu.Unlock()
	return e
}

func (s *Store) expired(e Entry) bool {
	return s.ttl > 0 && !e.StoredAt.Add(s.ttl).After(s.now())
}
