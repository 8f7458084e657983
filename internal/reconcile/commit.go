package reconcile

import (
	"errors"
	"slices"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// ErrItemNotFound is returned when an edit targets an unknown id.
var ErrItemNotFound = errors.New("item not found")

// NextID returns a creation-time-derived id (Unix milliseconds) that is
// greater than every id in items.
func NextID(items []model.InventoryItem, now time.Time) int64 {
	id := now.UnixMilli()
	for _, item := range items {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	return id
}

// Commit validates d and applies it to items. With d.ID set, the matching
// record is overwritten except for its id and DateAdded; otherwise a new
// record with a fresh id is appended. The input slice is not modified.
func Commit(items []model.InventoryItem, d Draft, now time.Time) ([]model.InventoryItem, model.InventoryItem, error) {
	f, err := Validate(d)
	if err != nil {
		return nil, model.InventoryItem{}, err
	}

	perishable := f.perishable
	item := model.InventoryItem{
		Barcode:        f.barcode,
		Name:           f.name,
		Location:       f.location,
		IsDiscrete:     f.discrete,
		Quantity:       f.quantity,
		Unit:           f.unit,
		RemainingRatio: f.ratio,
		PerishableDate: &perishable,
		LastModified:   now,
		ImageSmallURL:  f.image,
		URL:            f.url,
	}

	out := slices.Clone(items)
	if d.ID != 0 {
		i := slices.IndexFunc(out, func(it model.InventoryItem) bool { return it.ID == d.ID })
		if i < 0 {
			return nil, model.InventoryItem{}, ErrItemNotFound
		}
		item.ID = out[i].ID
		item.DateAdded = out[i].DateAdded
		out[i] = item
		return out, item, nil
	}

	item.ID = NextID(items, now)
	item.DateAdded = now
	return append(out, item), item, nil
}

// Delete removes every item whose id is in ids and reports which ids were
// actually present.
func Delete(items []model.InventoryItem, ids ...int64) ([]model.InventoryItem, []int64) {
	var removed []int64
	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if slices.Contains(ids, item.ID) {
			removed = append(removed, item.ID)
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

// MatchBarcode returns the items sharing a non-empty barcode.
func MatchBarcode(items []model.InventoryItem, barcode string) []model.InventoryItem {
	var out []model.InventoryItem
	for _, item := range items {
		if item.HasBarcode(barcode) {
			out = append(out, item)
		}
	}
	return out
}
