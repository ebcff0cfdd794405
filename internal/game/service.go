/*
Package game
File: service.go
Description:
    The dispatcher that sits between the transport layer and the craft rules.
    It owns the catalog (hot-reloadable) and the farm store, serializes crafts
    per player and notifies subscribers of successful crafts.
*/

package game

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier receives events for successful transitions.
type Notifier interface {
	Notify(Event)
}

// Service dispatches craft requests against player farms.
type Service struct {
	// catalogLock protects catalog during hot reloads.
	catalogLock sync.RWMutex
	catalog     *Catalog

	farms    *FarmStore
	notifier Notifier
	now      func() time.Time
}

// NewService creates a Service. notifier may be nil.
func NewService(catalog *Catalog, farms *FarmStore, notifier Notifier) *Service {
	if farms == nil {
		farms = NewFarmStore()
	}
	return &Service{
		catalog:  catalog,
		farms:    farms,
		notifier: notifier,
		now:      time.Now,
	}
}

// Catalog returns the catalog currently in use.
func (s *Service) Catalog() *Catalog {
	s.catalogLock.RLock()
	defer s.catalogLock.RUnlock()
	return s.catalog
}

// ReloadCatalog swaps in a freshly loaded catalog. On error the old one stays.
func (s *Service) ReloadCatalog(path string) error {
	c, err := LoadCatalog(path)
	if err != nil {
		return err
	}
	s.catalogLock.Lock()
	s.catalog = c
	s.catalogLock.Unlock()
	return nil
}

// Craftables lists the entries of the default allow-list.
// Without a catalog nothing is craftable.
func (s *Service) Craftables() []CraftableItem {
	c := s.Catalog()
	if c == nil {
		return []CraftableItem{}
	}
	return c.Craftables()
}

// NewFarm creates a farm for playerID seeded with the catalog's starting balance.
// Without a catalog the farm starts with a zero balance.
func (s *Service) NewFarm(playerID string) GameState {
	balance := decimal.Zero
	if c := s.Catalog(); c != nil {
		balance = c.StartingBalance()
	}
	return s.farms.Create(playerID, balance, s.now())
}

// Farm returns the current snapshot for playerID.
func (s *Service) Farm(playerID string) (GameState, error) {
	st, ok := s.farms.Get(playerID)
	if !ok {
		return GameState{}, newError(CodeFarmNotFound, "farm not found: "+playerID,
			map[string]string{"player_id": playerID})
	}
	return st, nil
}

// Craft applies a craft action to the player's farm and commits the result.
func (s *Service) Craft(playerID, item string, amount decimal.Decimal) (GameState, error) {
	catalog := s.Catalog()
	action := CraftAction{Type: ActionItemCrafted, Item: item, Amount: amount}

	next, err := s.farms.Update(playerID, func(st GameState) (GameState, error) {
		return Craft(st, action, catalog)
	})
	if err != nil {
		log.Printf("CRAFT: player %s failed to craft %s x%s: %s (%v)", playerID, item, formatAmount(amount), CodeOf(err), err)
		return GameState{}, err
	}

	log.Printf("CRAFT: player %s crafted %s x%s, balance %s", playerID, item, amount, next.Balance)

	if s.notifier != nil {
		s.notifier.Notify(Event{
			ID:       uuid.New().String(),
			Type:     ActionItemCrafted,
			PlayerID: playerID,
			Item:     item,
			Amount:   amount,
			Balance:  next.Balance,
			At:       s.now(),
		})
	}
	return next, nil
}
