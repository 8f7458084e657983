package inventory

import (
	"slices"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// DefaultPageSize is the number of items per page when none is given.
const DefaultPageSize = 10

// View is the transient filter/sort state owned by the presentation layer.
type View struct {
	Filter Filter `json:"filter"`
	Sort   Sort   `json:"sort"`
}

// DefaultView is the state restored by "clear filters".
func DefaultView() View {
	return View{Filter: DefaultFilter(), Sort: DefaultSort()}
}

// Page is one page of a query result.
type Page struct {
	Items      []Entry `json:"items"`
	Number     int     `json:"page"`
	Size       int     `json:"page_size"`
	TotalItems int     `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}

// Query filters, sorts and annotates items. It does not paginate.
func Query(items []model.InventoryItem, v View, selected Selection, now time.Time) []Entry {
	sorted := SortItems(Apply(items, v.Filter, selected, now), v.Sort)
	entries := make([]Entry, len(sorted))
	for i, item := range sorted {
		entries[i] = Annotate(item, now, v.Filter.Threshold())
	}
	return entries
}

// Paginate slices entries into 1-based pages. Out-of-range pages are empty.
func Paginate(entries []Entry, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	p := Page{
		Items:      []Entry{},
		Number:     page,
		Size:       size,
		TotalItems: len(entries),
		TotalPages: len(entries) / size,
	}
	if len(entries)%size != 0 {
		p.TotalPages++
	}
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := start + min(size, len(entries)-start)
	p.Items = entries[start:end]
	return p
}

// Locations returns the sorted distinct non-empty locations of items,
// merged with any extra known names.
func Locations(items []model.InventoryItem, extra ...string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, item := range items {
		add(item.Location)
	}
	for _, name := range extra {
		add(name)
	}
	slices.Sort(out)
	return out
}

// Summary counts items per spoilage class.
type Summary struct {
	Total        int `json:"total"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Normal       int `json:"normal"`
	ExpiringDays int `json:"expiring_days"`
}

// Summarize classifies every item against the threshold.
func Summarize(items []model.InventoryItem, now time.Time, expiringDays int) Summary {
	s := Summary{Total: len(items), ExpiringDays: expiringDays}
	for _, item := range items {
		switch ClassifyItem(item, now, expiringDays) {
		case Expired:
			s.Expired++
		case ExpiringSoon:
			s.ExpiringSoon++
		default:
			s.Normal++
		}
	}
	return s
}
