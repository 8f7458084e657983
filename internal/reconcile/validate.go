package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValidationError lists the form fields that stopped a submit.
type ValidationError struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// fields is a validated draft.
type fields struct {
	name       string
	location   string
	barcode    string
	perishable time.Time
	discrete   bool
	quantity   int
	unit       string
	ratio      float64
	image      string
	url        string
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseInt reads the leading integer of s, so "12 eggs" is 12.
func parseInt(s string) (int, error) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return strconv.Atoi(m)
}

// ParseDate accepts a day ("2025-11-01", read as UTC midnight) or an
// RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Validate checks the required fields and parses the numeric ones. Name,
// location and perishable date are always required; a quantity is required
// for continuous items. A discrete item with no quantity counts as 1.
func Validate(d Draft) (*fields, error) {
	verr := &ValidationError{}
	f := &fields{
		name:     strings.TrimSpace(d.Name),
		location: strings.TrimSpace(d.Location),
		barcode:  strings.TrimSpace(d.Barcode),
		discrete: d.IsDiscrete,
		image:    d.ImageSmallURL,
		url:      d.URL,
		ratio:    1,
	}

	if f.name == "" {
		verr.Missing = append(verr.Missing, "name")
	}
	if f.location == "" {
		verr.Missing = append(verr.Missing, "location")
	}
	if strings.TrimSpace(d.PerishableDate) == "" {
		verr.Missing = append(verr.Missing, "perishable_date")
	} else if t, err := ParseDate(d.PerishableDate); err != nil {
		verr.Invalid = append(verr.Invalid, "perishable_date")
	} else {
		f.perishable = t
	}

	qty := strings.TrimSpace(string(d.Quantity))
	switch {
	case qty == "" && d.IsDiscrete:
		f.quantity = 1
	case qty == "":
		verr.Missing = append(verr.Missing, "quantity")
	default:
		n, err := parseInt(qty)
		if err != nil || n < 0 {
			verr.Invalid = append(verr.Invalid, "quantity")
		}
		f.quantity = n
	}

	if !d.IsDiscrete {
		f.unit = strings.TrimSpace(d.Unit)
		if pct := strings.TrimSpace(string(d.RemainingPercent)); pct != "" {
			p, err := strconv.ParseFloat(pct, 64)
			if err != nil || p < 0 || p > 100 {
				verr.Invalid = append(verr.Invalid, "remaining_percent")
			}
			f.ratio = p / 100
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return nil, verr
	}
	return f, nil
}
