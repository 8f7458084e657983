// Package inventory holds the pure query engine over a pantry collection:
// spoilage classification, filtering, sorting and pagination. Nothing in
// this package performs I/O; callers pass the reference time explicitly.
package inventory

import (
	"math"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// DefaultExpiringDays is the expiring-soon threshold used when none is set.
const DefaultExpiringDays = 3

// Spoilage is the urgency classification derived from a perishable date.
type Spoilage string

// Spoilage classes.
const (
	Normal       Spoilage = "normal"
	ExpiringSoon Spoilage = "expiring_soon"
	Expired      Spoilage = "expired"
)

// DaysRemaining returns floor((perishable - now) / 24h). The second result
// is false when there is no perishable date.
func DaysRemaining(perishable *time.Time, now time.Time) (int, bool) {
	if perishable == nil {
		return 0, false
	}
	days := math.Floor(perishable.Sub(now).Hours() / 24)
	return int(days), true
}

// Classify maps a perishable date to a Spoilage class. A missing date is
// always Normal. Expiring today (0 days) is ExpiringSoon, not Expired.
func Classify(perishable *time.Time, now time.Time, expiringDays int) Spoilage {
	days, ok := DaysRemaining(perishable, now)
	switch {
	case !ok:
		return Normal
	case days < 0:
		return Expired
	case days <= expiringDays:
		return ExpiringSoon
	default:
		return Normal
	}
}

// ClassifyItem classifies an item by its perishable date.
func ClassifyItem(item model.InventoryItem, now time.Time, expiringDays int) Spoilage {
	return Classify(item.PerishableDate, now, expiringDays)
}

// Entry is an item annotated with its derived spoilage state.
type Entry struct {
	model.InventoryItem
	DaysRemaining *int     `json:"days_remaining"`
	Spoilage      Spoilage `json:"spoilage"`
}

// Annotate computes the derived fields for a single item.
func Annotate(item model.InventoryItem, now time.Time, expiringDays int) Entry {
	e := Entry{
		InventoryItem: item,
		Spoilage:      ClassifyItem(item, now, expiringDays),
	}
	if days, ok := DaysRemaining(item.PerishableDate, now); ok {
		e.DaysRemaining = &days
	}
	return e
}
