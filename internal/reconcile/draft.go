// Package reconcile turns user-entered and looked-up product data into
// committed inventory records.
package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// DateLayout is the day-precision layout used by date inputs.
const DateLayout = "2006-01-02"

// DefaultShelfLife is how far ahead a new draft's perishable date is set.
const DefaultShelfLife = 7 * 24 * time.Hour

// FormValue is a raw form field. It decodes from either a JSON string or a
// JSON number so API clients can send 12 or "12".
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or number: %w", err)
	}
	*v = FormValue(n.String())
	return nil
}

// Draft is the editable add/edit form. ID is zero for a new item.
type Draft struct {
	ID               int64     `json:"id,omitempty"`
	Barcode          string    `json:"barcode"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	IsDiscrete       bool      `json:"is_discrete"`
	Quantity         FormValue `json:"quantity"`
	Unit             string    `json:"unit"`
	RemainingPercent FormValue `json:"remaining_percent"`
	PerishableDate   string    `json:"perishable_date"`
	ImageSmallURL    string    `json:"image_small_url"`
	URL              string    `json:"url"`
}

// NewDraft returns the defaults of an empty add form: continuous, quantity
// 1, full, expiring a week from now.
func NewDraft(now time.Time) Draft {
	return Draft{
		Quantity:         "1",
		RemainingPercent: "100",
		PerishableDate:   now.Add(DefaultShelfLife).Format(DateLayout),
	}
}

// DraftFromItem fills an edit form from an existing item.
func DraftFromItem(item model.InventoryItem) Draft {
	d := Draft{
		ID:               item.ID,
		Barcode:          item.Barcode,
		Name:             item.Name,
		Location:         item.Location,
		IsDiscrete:       item.IsDiscrete,
		Quantity:         FormValue(strconv.Itoa(item.Quantity)),
		RemainingPercent: "100",
		ImageSmallURL:    item.ImageSmallURL,
		URL:              item.URL,
	}
	if !item.IsDiscrete {
		d.Unit = item.Unit
		d.RemainingPercent = FormValue(strconv.FormatFloat(item.RemainingRatio*100, 'f', -1, 64))
	}
	if item.PerishableDate != nil {
		d.PerishableDate = item.PerishableDate.UTC().Format(DateLayout)
	}
	return d
}

// PrefillFromProduct copies looked-up product data into d. Name, barcode,
// parsed quantity and unit, image and url are overwritten; the perishable
// date is reset to a week from now.
func PrefillFromProduct(d Draft, p model.Product, now time.Time) Draft {
	qty, unit := ParseQuantity(p.Quantity)
	d.Barcode = p.Barcode
	d.Name = p.Name
	d.IsDiscrete = false
	d.Quantity = FormValue(strconv.Itoa(qty))
	d.Unit = unit
	d.ImageSmallURL = p.Image()
	d.URL = p.URL
	d.PerishableDate = now.Add(DefaultShelfLife).Format(DateLayout)
	return d
}
