/*
Package game
File: models.go
Description:
    Defines the data structures used by the crafting economy.
    Catalog types map directly to the 'catalog.yaml' file, state types
    map to the JSON API responses.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionItemCrafted is the event type carried by every CraftAction.
const ActionItemCrafted = "item.crafted"

// GameState is one player's farm snapshot.
// It is treated as an immutable value: transitions return a new GameState.
type GameState struct {
	ID        string                     `json:"id"`         // Player / farm ID
	Balance   decimal.Decimal            `json:"balance"`    // Spendable currency, never negative
	Inventory map[string]decimal.Decimal `json:"inventory"`  // Item name -> quantity (absent == 0)
	CreatedAt time.Time                  `json:"created_at"` // When the farm was first created
}

// Clone returns a deep copy of the state. The copy never shares the inventory map.
func (s GameState) Clone() GameState {
	out := s
	out.Inventory = make(map[string]decimal.Decimal, len(s.Inventory))
	for name, qty := range s.Inventory {
		out.Inventory[name] = qty
	}
	return out
}

// CraftAction is a caller-constructed request to craft an item.
type CraftAction struct {
	Type   string          `json:"type"`            // Always ActionItemCrafted
	Item   string          `json:"item"`            // Name of the item to craft
	Amount decimal.Decimal `json:"amount"`          // Batch multiplier, 1 or 10
	Valid  []string        `json:"valid,omitempty"` // Optional allow-list override
}

// Ingredient is one entry of a craftable item's recipe.
type Ingredient struct {
	Item   string          `yaml:"item" json:"item"`     // Inventory item consumed
	Amount decimal.Decimal `yaml:"amount" json:"amount"` // Quantity consumed per crafted unit
}

// CraftableItem is a catalog entry.
type CraftableItem struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Price       decimal.Decimal `yaml:"price" json:"price"`                           // Cost per crafted unit
	Ingredients []Ingredient    `yaml:"ingredients" json:"ingredients"`               // Consumed in declaration order
	Requires    string          `yaml:"requires,omitempty" json:"requires,omitempty"` // Inventory key that must exist
	Disabled    bool            `yaml:"disabled,omitempty" json:"disabled,omitempty"` // Crafting permanently refused
}

// CatalogBalance stores global tuning variables loaded from 'catalog.yaml'.
type CatalogBalance struct {
	StartingBalance decimal.Decimal `yaml:"starting_balance" json:"starting_balance"` // Balance given to a new farm
}

// catalogFile is the root struct, mapping to the entire 'catalog.yaml' file.
type catalogFile struct {
	Balance CatalogBalance  `yaml:"game_balance"`
	Tools   []CraftableItem `yaml:"tools"`
	Seeds   []CraftableItem `yaml:"seeds"`
	Foods   []CraftableItem `yaml:"foods"`
	NFTs    []CraftableItem `yaml:"nfts"`
}

// Event is published after a successful transition.
type Event struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	PlayerID string          `json:"player_id"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
	At       time.Time       `json:"at"`
}
