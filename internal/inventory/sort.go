package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erazemk/pantryscan/internal/model"
)

// SortKey names the field a collection is ordered by.
type SortKey string

// Sort keys.
const (
	SortName      SortKey = "name"
	SortLocation  SortKey = "location"
	SortSpoilage  SortKey = "spoilage"
	SortAmount    SortKey = "amountRemaining"
	SortDateAdded SortKey = "dateAdded"
)

// Direction is the sort direction.
type Direction string

// Directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is one active (key, direction) pair.
type Sort struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSort surfaces the soonest-expiring items first.
func DefaultSort() Sort {
	return Sort{Key: SortSpoilage, Direction: Asc}
}

// String renders the sort as "key_direction", e.g. "spoilage_asc".
func (s Sort) String() string {
	return string(s.Key) + "_" + string(s.Direction)
}

// Validate checks that both key and direction are known.
func (s Sort) Validate() error {
	switch s.Key {
	case SortName, SortLocation, SortSpoilage, SortAmount, SortDateAdded:
	default:
		return fmt.Errorf("unknown sort key %q", s.Key)
	}
	if s.Direction != Asc && s.Direction != Desc {
		return fmt.Errorf("unknown sort direction %q", s.Direction)
	}
	return nil
}

// ParseSort parses "key_direction".
func ParseSort(v string) (Sort, error) {
	i := strings.LastIndexByte(v, '_')
	if i < 0 {
		return Sort{}, fmt.Errorf("invalid sort %q: expected key_direction", v)
	}
	s := Sort{Key: SortKey(v[:i]), Direction: Direction(v[i+1:])}
	if err := s.Validate(); err != nil {
		return Sort{}, err
	}
	return s, nil
}

// SortItems returns a copy of items ordered by s. The sort is stable, so
// items with equal keys keep their input order. Items without a perishable
// date sort as if infinitely far in the future.
func SortItems(items []model.InventoryItem, s Sort) []model.InventoryItem {
	out := slices.Clone(items)
	compare := comparator(s.Key)
	if s.Direction == Desc {
		slices.SortStableFunc(out, func(a, b model.InventoryItem) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func comparator(key SortKey) func(a, b model.InventoryItem) int {
	switch key {
	case SortName:
		// Collators are not safe for concurrent use; one per sort.
		c := collate.New(language.Und)
		return func(a, b model.InventoryItem) int { return c.CompareString(a.Name, b.Name) }
	case SortLocation:
		return func(a, b model.InventoryItem) int { return strings.Compare(a.Location, b.Location) }
	case SortAmount:
		return func(a, b model.InventoryItem) int { return cmp.Compare(AmountRemaining(a), AmountRemaining(b)) }
	case SortDateAdded:
		return func(a, b model.InventoryItem) int { return a.DateAdded.Compare(b.DateAdded) }
	default:
		return compareSpoilage
	}
}

func compareSpoilage(a, b model.InventoryItem) int {
	switch {
	case a.PerishableDate == nil && b.PerishableDate == nil:
		return 0
	case a.PerishableDate == nil:
		return 1
	case b.PerishableDate == nil:
		return -1
	default:
		return a.PerishableDate.Compare(*b.PerishableDate)
	}
}
