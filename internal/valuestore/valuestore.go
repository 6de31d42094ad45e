// Package valuestore holds the (period, account) -> float64 map that
// backs both seeded inputs and computed results. Unlike
// internal/nodestore, it is long-lived across Engine.Compute cycles
// and never expires entries.
package valuestore

import (
	"fmt"
	"sync"

	"github.com/takrawm/famengine/internal/fam"
)

type key struct {
	period  fam.PeriodId
	account fam.AccountId
}

func (k key) String() string {
	return fmt.Sprintf("%s::%s", k.period, k.account)
}

// Store is a composite-keyed value table. Safe for concurrent reads;
// callers must still serialize Compute() calls per the engine's
// single-threaded contract (spec.md §5).
type Store struct {
	mu     sync.RWMutex
	values map[key]float64
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[key]float64)}
}

// Set stores v at (pid, aid), overwriting any prior value. Seeded and
// computed values live in the same table and are indistinguishable at
// read time.
func (s *Store) Set(pid fam.PeriodId, aid fam.AccountId, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key{pid, aid}] = v
}

// Get returns the value at (pid, aid) and whether it was present.
func (s *Store) Get(pid fam.PeriodId, aid fam.AccountId) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key{pid, aid}]
	return v, ok
}

// Has reports whether a value exists at (pid, aid).
func (s *Store) Has(pid fam.PeriodId, aid fam.AccountId) bool {
	_, ok := s.Get(pid, aid)
	return ok
}
