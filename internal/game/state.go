/*
Package game
File: state.go
Description:
    Manages the runtime state of the application: one GameState snapshot per
    player farm.

    Crafts for the same player are serialized through that farm's lock so each
    transition sees the latest snapshot. Different players never contend.
*/

package game

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type farm struct {
	mu    sync.Mutex
	state GameState
}

// FarmStore holds player farms in memory.
type FarmStore struct {
	// mu protects the farms index only. Each farm carries its own lock.
	mu    sync.RWMutex
	farms map[string]*farm
}

// NewFarmStore creates an empty store.
func NewFarmStore() *FarmStore {
	return &FarmStore{farms: make(map[string]*farm)}
}

func (s *FarmStore) lookup(id string) (*farm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.farms[id]
	return f, ok
}

// Get returns a copy of the farm snapshot for id.
func (s *FarmStore) Get(id string) (GameState, bool) {
	f, ok := s.lookup(id)
	if !ok {
		return GameState{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone(), true
}

// Create registers a new farm with the given balance and an empty inventory.
// If the farm already exists its current snapshot is returned unchanged.
func (s *FarmStore) Create(id string, balance decimal.Decimal, now time.Time) GameState {
	s.mu.Lock()
	f, ok := s.farms[id]
	if !ok {
		f = &farm{state: GameState{
			ID:        id,
			Balance:   balance,
			Inventory: make(map[string]decimal.Decimal),
			CreatedAt: now,
		}}
		s.farms[id] = f
	}
	s.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// put replaces the snapshot for state.ID, creating the farm if needed.
func (s *FarmStore) put(state GameState) {
	s.mu.Lock()
	f, ok := s.farms[state.ID]
	if !ok {
		f = &farm{}
		s.farms[state.ID] = f
	}
	s.mu.Unlock()

	f.mu.Lock()
	f.state = state.Clone()
	f.mu.Unlock()
}

// Update runs fn against the current snapshot while holding the farm's lock.
// The result is committed only when fn succeeds; on error the farm is unchanged.
func (s *FarmStore) Update(id string, fn func(GameState) (GameState, error)) (GameState, error) {
	f, ok := s.lookup(id)
	if !ok {
		return GameState{}, newError(CodeFarmNotFound, "farm not found: "+id,
			map[string]string{"player_id": id})
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := fn(f.state.Clone())
	if err != nil {
		return GameState{}, err
	}
	f.state = next.Clone()
	return next, nil
}
