package inventory

import (
	"slices"
	"strings"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// Filter is the set of active predicates. Predicates are ANDed; Locations
// is an OR over its members. Zero values mean "no restriction".
type Filter struct {
	Search       string   `json:"search"`
	Locations    []string `json:"locations"`
	Spoiled      bool     `json:"spoiled"`
	ExpiringSoon bool     `json:"expiring_soon"`
	SelectedOnly bool     `json:"selected_only"`
	ExpiringDays int      `json:"expiring_days"`
}

// DefaultFilter returns a filter with no active predicates.
func DefaultFilter() Filter {
	return Filter{ExpiringDays: DefaultExpiringDays}
}

// Threshold returns the expiring-soon threshold, never negative.
func (f Filter) Threshold() int {
	return max(f.ExpiringDays, 0)
}

// Selection is a set of selected item ids.
type Selection map[int64]struct{}

// Has reports whether id is selected.
func (s Selection) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Match reports whether item satisfies every active predicate.
func (f Filter) Match(item model.InventoryItem, selected Selection, now time.Time) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Locations) > 0 && !slices.Contains(f.Locations, item.Location) {
		return false
	}
	if f.Spoiled || f.ExpiringSoon {
		class := ClassifyItem(item, now, f.Threshold())
		if f.Spoiled && class != Expired {
			return false
		}
		if f.ExpiringSoon && class != ExpiringSoon {
			return false
		}
	}
	if f.SelectedOnly && !selected.Has(item.ID) {
		return false
	}
	return true
}

// Apply returns the items matching f, in their original order.
func Apply(items []model.InventoryItem, f Filter, selected Selection, now time.Time) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if f.Match(item, selected, now) {
			out = append(out, item)
		}
	}
	return out
}
