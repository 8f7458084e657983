package inventory

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/pantryscan/internal/model"
)

var now = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

const day = 24 * time.Hour

func names(items []model.InventoryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func entryNames(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestDaysRemaining(t *testing.T) {
	_, ok := DaysRemaining(nil, now)
	assert.False(t, ok)

	tests := []struct {
		offset time.Duration
		want   int
	}{
		{2 * day, 2},
		{2*day + 23*time.Hour, 2},
		{time.Hour, 0},
		{0, 0},
		{-time.Hour, -1},
		{-day, -1},
		{-day - time.Minute, -2},
	}
	for _, tt := range tests {
		got, ok := DaysRemaining(at(tt.offset), now)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "offset %v", tt.offset)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		perishable *time.Time
		want       Spoilage
	}{
		{"no date", nil, Normal},
		{"yesterday", at(-day), Expired},
		{"an hour ago", at(-time.Hour), Expired},
		{"later today", at(time.Hour), ExpiringSoon},
		{"in two days", at(2 * day), ExpiringSoon},
		{"at threshold", at(3*day + time.Hour), ExpiringSoon},
		{"past threshold", at(4*day + time.Hour), Normal},
		{"far future", at(400 * day), Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.perishable, now, DefaultExpiringDays))
		})
	}
}

func TestClassifyScenario(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, PerishableDate: at(2 * day)},
		{ID: 2, PerishableDate: at(-day)},
		{ID: 3},
	}
	assert.Equal(t, ExpiringSoon, ClassifyItem(items[0], now, 3))
	assert.Equal(t, Expired, ClassifyItem(items[1], now, 3))
	assert.Equal(t, Normal, ClassifyItem(items[2], now, 3))
}

func TestAmountRemaining(t *testing.T) {
	discrete := model.InventoryItem{IsDiscrete: true, Quantity: 3, RemainingRatio: 1}
	continuous := model.InventoryItem{Quantity: 500, Unit: "g", RemainingRatio: 0.3}

	assert.Equal(t, 3.0, AmountRemaining(discrete))
	assert.Equal(t, 0.3, AmountRemaining(continuous))
}

func fixture() []model.InventoryItem {
	return []model.InventoryItem{
		{ID: 1, Name: "Milk", Location: "Fridge", PerishableDate: at(2 * day), RemainingRatio: 0.5, DateAdded: now.Add(-10 * day)},
		{ID: 2, Name: "Bread", Location: "Pantry", PerishableDate: at(-day), RemainingRatio: 0.8, DateAdded: now.Add(-8 * day)},
		{ID: 3, Name: "Rice", Location: "Pantry", RemainingRatio: 1, DateAdded: now.Add(-30 * day)},
		{ID: 4, Name: "Almond milk", Location: "Fridge", PerishableDate: at(20 * day), IsDiscrete: true, Quantity: 2, RemainingRatio: 1, DateAdded: now.Add(-day)},
		{ID: 5, Name: "Yogurt", Location: "Fridge", PerishableDate: at(-3 * day), IsDiscrete: true, Quantity: 4, RemainingRatio: 1, DateAdded: now.Add(-5 * day)},
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	items := []model.InventoryItem{{ID: 1, Name: "Milk"}, {ID: 2, Name: "Bread"}}
	got := Apply(items, Filter{Search: "mil"}, nil, now)
	assert.Equal(t, []string{"Milk"}, names(got))
}

func TestFilterEmptyMatchesEverything(t *testing.T) {
	got := Apply(fixture(), DefaultFilter(), nil, now)
	assert.Len(t, got, len(fixture()))
}

func TestFilterPredicates(t *testing.T) {
	selected := Selection{2: {}, 4: {}}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"locations or", Filter{Locations: []string{"Pantry"}}, []string{"Bread", "Rice"}},
		{"two locations", Filter{Locations: []string{"Pantry", "Fridge"}}, []string{"Milk", "Bread", "Rice", "Almond milk", "Yogurt"}},
		{"spoiled", Filter{Spoiled: true, ExpiringDays: 3}, []string{"Bread", "Yogurt"}},
		{"expiring soon", Filter{ExpiringSoon: true, ExpiringDays: 3}, []string{"Milk"}},
		{"expiring wider threshold", Filter{ExpiringSoon: true, ExpiringDays: 30}, []string{"Milk", "Almond milk"}},
		{"selected only", Filter{SelectedOnly: true}, []string{"Bread", "Almond milk"}},
		{"spoiled and expiring is empty", Filter{Spoiled: true, ExpiringSoon: true, ExpiringDays: 3}, []string{}},
		{"search and location", Filter{Search: "MILK", Locations: []string{"Fridge"}}, []string{"Milk", "Almond milk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Apply(fixture(), tt.filter, selected, now)))
		})
	}
}

func TestFilterIsIntersection(t *testing.T) {
	items := fixture()
	selected := Selection{1: {}, 2: {}, 5: {}}
	single := []Filter{
		{Search: "r", ExpiringDays: 3},
		{Locations: []string{"Fridge"}, ExpiringDays: 3},
		{Spoiled: true, ExpiringDays: 3},
		{ExpiringSoon: true, ExpiringDays: 3},
		{SelectedOnly: true, ExpiringDays: 3},
	}
	merge := func(a, b Filter) Filter {
		m := a
		if b.Search != "" {
			m.Search = b.Search
		}
		if len(b.Locations) > 0 {
			m.Locations = b.Locations
		}
		m.Spoiled = a.Spoiled || b.Spoiled
		m.ExpiringSoon = a.ExpiringSoon || b.ExpiringSoon
		m.SelectedOnly = a.SelectedOnly || b.SelectedOnly
		return m
	}

	for i := range single {
		for j := range single {
			if i == j {
				continue
			}
			both := Apply(items, merge(single[i], single[j]), selected, now)
			left := Apply(items, single[i], selected, now)
			right := Apply(items, single[j], selected, now)

			var want []string
			for _, l := range left {
				for _, r := range right {
					if l.ID == r.ID {
						want = append(want, l.Name)
					}
				}
			}
			assert.ElementsMatch(t, want, names(both), "filters %d and %d", i, j)
		}
	}
}

func TestNegativeThresholdIsClamped(t *testing.T) {
	items := []model.InventoryItem{{ID: 1, Name: "Today", PerishableDate: at(time.Hour)}}
	got := Apply(items, Filter{ExpiringSoon: true, ExpiringDays: -5}, nil, now)
	assert.Len(t, got, 1)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("amountRemaining_desc")
	require.NoError(t, err)
	assert.Equal(t, Sort{Key: SortAmount, Direction: Desc}, s)
	assert.Equal(t, "amountRemaining_desc", s.String())

	for _, bad := range []string{"", "name", "price_asc", "name_up"} {
		_, err := ParseSort(bad)
		assert.Error(t, err, bad)
	}
}

func TestSortSpoilagePutsMissingDatesLast(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Name: "Never"},
		{ID: 2, Name: "Far", PerishableDate: at(10000 * day)},
		{ID: 3, Name: "Soon", PerishableDate: at(day)},
		{ID: 4, Name: "Also never"},
	}

	asc := SortItems(items, Sort{SortSpoilage, Asc})
	assert.Equal(t, []string{"Soon", "Far", "Never", "Also never"}, names(asc))

	desc := SortItems(items, Sort{SortSpoilage, Desc})
	assert.Equal(t, []string{"Never", "Also never", "Far", "Soon"}, names(desc))
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		sort Sort
		want []string
	}{
		{Sort{SortName, Asc}, []string{"Almond milk", "Bread", "Milk", "Rice", "Yogurt"}},
		{Sort{SortName, Desc}, []string{"Yogurt", "Rice", "Milk", "Bread", "Almond milk"}},
		{Sort{SortLocation, Asc}, []string{"Milk", "Almond milk", "Yogurt", "Bread", "Rice"}},
		{Sort{SortDateAdded, Asc}, []string{"Rice", "Milk", "Bread", "Yogurt", "Almond milk"}},
		{Sort{SortAmount, Asc}, []string{"Milk", "Bread", "Rice", "Almond milk", "Yogurt"}},
		{Sort{SortAmount, Desc}, []string{"Yogurt", "Almond milk", "Rice", "Bread", "Milk"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, names(SortItems(fixture(), tt.sort)))
		})
	}
}

func TestSortIsStable(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Name: "a", Location: "Fridge"},
		{ID: 2, Name: "b", Location: "Pantry"},
		{ID: 3, Name: "c", Location: "Fridge"},
		{ID: 4, Name: "d", Location: "Pantry"},
		{ID: 5, Name: "e", Location: "Fridge"},
	}
	for _, dir := range []Direction{Asc, Desc} {
		got := SortItems(items, Sort{SortLocation, dir})
		var fridge, pantry []string
		for _, item := range got {
			if item.Location == "Fridge" {
				fridge = append(fridge, item.Name)
			} else {
				pantry = append(pantry, item.Name)
			}
		}
		assert.Equal(t, []string{"a", "c", "e"}, fridge)
		assert.Equal(t, []string{"b", "d"}, pantry)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := fixture()
	SortItems(items, Sort{SortName, Asc})
	assert.Equal(t, names(fixture()), names(items))
}

func TestQueryDefaultView(t *testing.T) {
	entries := Query(fixture(), DefaultView(), nil, now)
	assert.Equal(t, []string{"Yogurt", "Bread", "Milk", "Almond milk", "Rice"}, entryNames(entries))

	assert.Equal(t, Expired, entries[0].Spoilage)
	require.NotNil(t, entries[0].DaysRemaining)
	assert.Equal(t, -3, *entries[0].DaysRemaining)
	assert.Nil(t, entries[4].DaysRemaining)
}

func TestPaginate(t *testing.T) {
	entries := make([]Entry, 23)
	for i := range entries {
		entries[i].ID = int64(i + 1)
	}

	p := Paginate(entries, 1, 10)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.TotalItems)

	p = Paginate(entries, 3, 10)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, int64(21), p.Items[0].ID)

	p = Paginate(entries, 4, 10)
	assert.Empty(t, p.Items)

	p = Paginate(entries, 0, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = Paginate(nil, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.NotNil(t, p.Items)

	p = Paginate(entries[:3], math.MaxInt64/5, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(entries, 1, math.MaxInt)
	assert.Len(t, p.Items, 23)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(entries, math.MaxInt, math.MaxInt)
	assert.Empty(t, p.Items)
}

func TestLocations(t *testing.T) {
	got := Locations(fixture(), "Freezer", "Pantry", "")
	assert.Equal(t, []string{"Freezer", "Fridge", "Pantry"}, got)
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(), now, 3)
	assert.Equal(t, Summary{Total: 5, Expired: 2, ExpiringSoon: 1, Normal: 2, ExpiringDays: 3}, s)
}
