/*
Package game
File: craft.go
Description:
    The crafting rules engine. Craft converts balance and ingredients into a
    crafted item, returning a new GameState. It performs no I/O and never
    modifies the state it was given.
*/

package game

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	amountSingle = decimal.NewFromInt(1)
	amountBatch  = decimal.NewFromInt(10)
)

// maxAmountExponent bounds the exponent of an accepted amount, so comparing it
// against 1 and 10 never rescales by more than 10^8.
const maxAmountExponent = 8

// Craft applies action to state using catalog and returns the resulting state.
// On failure the returned error is an *Error and the input state is untouched.
//
// Checks run in a fixed order and the first failure wins: craftability,
// disabled flag, amount, prerequisite, balance, then ingredients in recipe order.
func Craft(state GameState, action CraftAction, catalog *Catalog) (GameState, error) {
	item, ok := lookupCraftable(action, catalog)
	if !ok {
		return GameState{}, newError(CodeNotCraftable,
			fmt.Sprintf("This item is not craftable: %s", action.Item),
			map[string]string{"item": action.Item})
	}

	if item.Disabled {
		return GameState{}, newError(CodeItemDisabled, "This item is disabled",
			map[string]string{"item": item.Name})
	}

	if !isBatchAmount(action.Amount) {
		return GameState{}, newError(CodeInvalidAmount, "Invalid amount",
			map[string]string{"amount": formatAmount(action.Amount)})
	}

	// Presence of the key is enough, a zero quantity still unlocks.
	if item.Requires != "" {
		if _, owned := state.Inventory[item.Requires]; !owned {
			return GameState{}, newError(CodeMissingPrerequisite,
				fmt.Sprintf("Missing %s", item.Requires),
				map[string]string{"item": item.Name, "requires": item.Requires})
		}
	}

	totalExpenses := item.Price.Mul(action.Amount)
	if state.Balance.LessThan(totalExpenses) {
		return GameState{}, newError(CodeInsufficientBalance, "Insufficient tokens",
			map[string]string{"required": totalExpenses.String(), "available": state.Balance.String()})
	}

	next := state.Clone()
	for _, ing := range item.Ingredients {
		count := next.Inventory[ing.Item]
		totalAmount := ing.Amount.Mul(action.Amount)
		if count.LessThan(totalAmount) {
			return GameState{}, newError(CodeInsufficientIngredient,
				fmt.Sprintf("Insufficient ingredient: %s", ing.Item),
				map[string]string{"ingredient": ing.Item, "required": totalAmount.String(), "available": count.String()})
		}
		next.Inventory[ing.Item] = count.Sub(totalAmount)
	}

	// The crafted quantity builds on the pre-craft count, even if the item was also an ingredient.
	oldAmount := state.Inventory[action.Item]
	next.Inventory[action.Item] = oldAmount.Add(action.Amount)
	next.Balance = state.Balance.Sub(totalExpenses)
	return next, nil
}

// isBatchAmount reports whether amount is exactly 1 or 10.
func isBatchAmount(amount decimal.Decimal) bool {
	if exp := amount.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return false
	}
	return amount.Equal(amountSingle) || amount.Equal(amountBatch)
}

// formatAmount renders amount for logs and error metadata. Amounts outside the
// exponent window are shown in scientific form so they are never expanded.
func formatAmount(amount decimal.Decimal) string {
	if exp := amount.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return amount.Coefficient().String() + "e" + strconv.FormatInt(int64(exp), 10)
	}
	return amount.String()
}

// lookupCraftable resolves the catalog entry for action.Item, honouring the
// caller's allow-list when one is given.
func lookupCraftable(action CraftAction, catalog *Catalog) (CraftableItem, bool) {
	if catalog == nil {
		return CraftableItem{}, false
	}
	if action.Valid != nil {
		if !slices.Contains(action.Valid, action.Item) {
			return CraftableItem{}, false
		}
	} else if !catalog.IsCraftable(action.Item) {
		return CraftableItem{}, false
	}
	return catalog.Get(action.Item)
}
