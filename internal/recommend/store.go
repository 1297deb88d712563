// Package recommend holds the per-user single-slot recommendation state.
// A user has at most one outstanding proposal at any time; the slot is
// ephemeral and never persisted.
package recommend

import (
	"sync"

	"github.com/modurim/homepick-api/internal/models"
)

// Recommendation is a proposed routine awaiting accept or reject.
type Recommendation struct {
	UserID    uint              `json:"userId"`
	Situation string            `json:"situation"`
	Routine   string            `json:"routine"`
	Updates   models.AppUpdates `json:"updates"`
}

// Store maps user ids to at-most-one Recommendation each, with a per-user
// mutex so that negotiation operations for the same user are serialized.
// Two concurrent accepts must not both pass the duplicate check.
type Store struct {
	mu    sync.Mutex
	slots map[uint]*slot
}

type slot struct {
	mu  sync.Mutex
	rec *Recommendation
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{slots: make(map[uint]*slot)}
}

// Lock acquires the user's slot lock and returns the unlock function.
// Callers must hold the lock across an entire negotiation operation.
func (s *Store) Lock(userID uint) func() {
	sl := s.slot(userID)
	sl.mu.Lock()
	return sl.mu.Unlock
}

// Get returns the user's pending Recommendation, or nil. The caller must
// hold the user's lock.
func (s *Store) Get(userID uint) *Recommendation {
	return s.slot(userID).rec
}

// Put stores rec as userID's pending Recommendation, discarding any prior
// one. The caller must hold the user's lock. The slot key and the owner
// recorded on the Recommendation are distinct on purpose: ownership is
// re-checked on every read.
func (s *Store) Put(userID uint, rec *Recommendation) {
	s.slot(userID).rec = rec
}

// Clear removes the user's pending Recommendation. The caller must hold the
// user's lock.
func (s *Store) Clear(userID uint) {
	s.slot(userID).rec = nil
}

// slot returns the user's slot, creating it on first use. Slots are never
// removed; the per-user footprint is a pointer and a mutex.
func (s *Store) slot(userID uint) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[userID]
	if !ok {
		sl = &slot{}
		s.slots[userID] = sl
	}
	return sl
}
