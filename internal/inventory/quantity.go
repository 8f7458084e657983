package inventory

import "github.com/erazemk/pantryscan/internal/model"

// AmountRemaining returns the scalar used to order items by amount: the unit
// count for discrete items, the remaining ratio otherwise. The two regimes
// are not normalised against each other; a discrete 3 sorts above a
// continuous 0.3.
func AmountRemaining(item model.InventoryItem) float64 {
	if item.IsDiscrete {
		return float64(item.Quantity)
	}
	return item.RemainingRatio
}
