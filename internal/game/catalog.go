/*
Package game
File: catalog.go
Description:
    Loads the static item catalog from YAML and answers lookups against it.
    Only tools, seeds and foods can be crafted; NFT entries are loaded so they
    can be looked up, but never appear in the default craftable set.
*/

package game

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog is the read-only item catalog. It is safe for concurrent reads.
type Catalog struct {
	balance    CatalogBalance
	items      map[string]CraftableItem
	craftables []string
	craftable  map[string]struct{}
}

// LoadCatalog reads a YAML catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(f)
}

// ParseCatalog decodes a YAML catalog and builds the lookup indexes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &Error{Code: CodeInvalidCatalog, Message: "decode catalog: " + err.Error(), Cause: err}
	}

	c := &Catalog{
		balance:   file.Balance,
		items:     make(map[string]CraftableItem),
		craftable: make(map[string]struct{}),
	}

	// Tools, seeds and foods form the default allow-list, in that order.
	for _, partition := range [][]CraftableItem{file.Tools, file.Seeds, file.Foods} {
		for _, item := range partition {
			if err := c.add(item); err != nil {
				return nil, err
			}
			c.craftables = append(c.craftables, item.Name)
			c.craftable[item.Name] = struct{}{}
		}
	}
	for _, item := range file.NFTs {
		if err := c.add(item); err != nil {
			return nil, err
		}
	}

	if c.balance.StartingBalance.IsNegative() {
		return nil, newError(CodeInvalidCatalog, "starting balance is negative", nil)
	}
	return c, nil
}

func (c *Catalog) add(item CraftableItem) error {
	if item.Name == "" {
		return newError(CodeInvalidCatalog, "catalog entry without a name", nil)
	}
	if _, dup := c.items[item.Name]; dup {
		return newError(CodeInvalidCatalog, fmt.Sprintf("duplicate catalog entry: %s", item.Name),
			map[string]string{"item": item.Name})
	}
	if item.Price.IsNegative() {
		return newError(CodeInvalidCatalog, fmt.Sprintf("negative price: %s", item.Name),
			map[string]string{"item": item.Name})
	}
	for _, ing := range item.Ingredients {
		if ing.Item == "" || ing.Amount.IsNegative() {
			return newError(CodeInvalidCatalog, fmt.Sprintf("invalid ingredient in %s", item.Name),
				map[string]string{"item": item.Name, "ingredient": ing.Item})
		}
	}
	c.items[item.Name] = item
	return nil
}

// Get looks up an entry in any partition, NFTs included.
func (c *Catalog) Get(name string) (CraftableItem, bool) {
	item, ok := c.items[name]
	return item, ok
}

// CraftableNames returns the default allow-list: every tool, seed and food name.
func (c *Catalog) CraftableNames() []string {
	out := make([]string, len(c.craftables))
	copy(out, c.craftables)
	return out
}

// IsCraftable reports whether name is in the default allow-list.
func (c *Catalog) IsCraftable(name string) bool {
	_, ok := c.craftable[name]
	return ok
}

// Craftables returns the entries of the default allow-list in declaration order.
func (c *Catalog) Craftables() []CraftableItem {
	out := make([]CraftableItem, 0, len(c.craftables))
	for _, name := range c.craftables {
		out = append(out, c.items[name])
	}
	return out
}

// StartingBalance is the balance a new farm starts with.
func (c *Catalog) StartingBalance() decimal.Decimal {
	return c.balance.StartingBalance
}
