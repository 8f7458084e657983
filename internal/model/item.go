package model

import "time"

// InventoryItem is a single pantry entry. Discrete items are tracked by whole
// units in Quantity; continuous items pair Quantity and Unit with a
// RemainingRatio in [0,1].
type InventoryItem struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Barcode        string     `json:"barcode,omitempty"`
	Location       string     `json:"location"`
	IsDiscrete     bool       `json:"is_discrete"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit,omitempty"`
	RemainingRatio float64    `json:"remaining_ratio"`
	PerishableDate *time.Time `json:"perishable_date,omitempty"`
	DateAdded      time.Time  `json:"date_added"`
	LastModified   time.Time  `json:"last_modified"`
	ImageSmallURL  string     `json:"image_small_url,omitempty"`
	URL            string     `json:"url,omitempty"`
}

// HasBarcode reports whether the item carries the given non-empty barcode.
func (i InventoryItem) HasBarcode(code string) bool {
	return code != "" && i.Barcode == code
}
