package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultUnit is used when a size string carries no unit.
const DefaultUnit = "units"

var (
	amountWithUnit = regexp.MustCompile(`(\d+)(?:[.,]\d+)?\s*([a-zA-Z]+)`)
	amountOnly     = regexp.MustCompile(`\d+`)
)

// ParseQuantity splits a free-text product size such as "500 g" into a
// whole quantity and a unit. Fallbacks, in order: a bare number keeps the
// default unit; a string with no digits becomes the unit with quantity 1;
// an empty string yields 1 DefaultUnit. Fractions are truncated.
func ParseQuantity(raw string) (int, string) {
	if m := amountWithUnit.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, m[2]
		}
	}
	if m := amountOnly.FindString(raw); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, DefaultUnit
		}
	}
	if s := strings.TrimSpace(raw); s != "" {
		return 1, s
	}
	return 1, DefaultUnit
}
