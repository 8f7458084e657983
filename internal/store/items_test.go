package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/pantryscan/internal/db"
	"github.com/erazemk/pantryscan/internal/model"
)

func TestLoadInventoryReturnsSeedBeforeFirstSave(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	items, err := LoadInventory(ctx, database)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seed items, got %d", len(items))
	}
	if items[0].Name != "Milk" || items[1].Name != "Bananas" {
		t.Errorf("unexpected seed items: %q, %q", items[0].Name, items[1].Name)
	}
	if items[0].RemainingRatio != 0.75 {
		t.Errorf("expected milk ratio 0.75, got %v", items[0].RemainingRatio)
	}
	if !items[1].IsDiscrete || items[1].Quantity != 6 {
		t.Errorf("expected 6 discrete bananas, got %+v", items[1])
	}
}

func TestSaveEmptyInventoryStaysEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SaveInventory(ctx, database, nil); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	items, err := LoadInventory(ctx, database)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil inventory, got %v", items)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	added := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	expires := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	want := []model.InventoryItem{
		{ID: 1760000000000, Name: "Yogurt", Barcode: "3800", Location: "Fridge", Quantity: 500, Unit: "g",
			RemainingRatio: 0.5, PerishableDate: &expires, DateAdded: added, LastModified: added,
			ImageSmallURL: "https://img/y.jpg", URL: "https://off/y"},
		{ID: 5, Name: "Rice", Location: "Pantry", Quantity: 1, Unit: "kg", RemainingRatio: 1,
			DateAdded: added, LastModified: added},
		{ID: 3, Name: "Eggs", Location: "Fridge", IsDiscrete: true, Quantity: 12, RemainingRatio: 1,
			PerishableDate: &expires, DateAdded: added, LastModified: added},
	}

	if err := SaveInventory(ctx, database, want); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	got, err := LoadInventory(ctx, database)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name {
			t.Errorf("item %d: expected %d/%q, got %d/%q", i, want[i].ID, want[i].Name, got[i].ID, got[i].Name)
		}
		if got[i].IsDiscrete != want[i].IsDiscrete || got[i].Quantity != want[i].Quantity || got[i].Unit != want[i].Unit {
			t.Errorf("item %d: quantity mismatch: %+v", i, got[i])
		}
		if got[i].RemainingRatio != want[i].RemainingRatio {
			t.Errorf("item %d: expected ratio %v, got %v", i, want[i].RemainingRatio, got[i].RemainingRatio)
		}
		if !got[i].DateAdded.Equal(want[i].DateAdded) {
			t.Errorf("item %d: expected date added %v, got %v", i, want[i].DateAdded, got[i].DateAdded)
		}
		switch {
		case want[i].PerishableDate == nil && got[i].PerishableDate != nil:
			t.Errorf("item %d: expected no perishable date, got %v", i, got[i].PerishableDate)
		case want[i].PerishableDate != nil && (got[i].PerishableDate == nil || !got[i].PerishableDate.Equal(*want[i].PerishableDate)):
			t.Errorf("item %d: expected perishable date %v, got %v", i, want[i].PerishableDate, got[i].PerishableDate)
		}
	}
	if got[0].Barcode != "3800" || got[0].ImageSmallURL != "https://img/y.jpg" || got[0].URL != "https://off/y" {
		t.Errorf("product fields not preserved: %+v", got[0])
	}

	// Saving again replaces the whole collection.
	if err := SaveInventory(ctx, database, want[1:2]); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	got, _ = LoadInventory(ctx, database)
	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("expected only Rice after resave, got %+v", got)
	}
}

func TestSaveInventoryRollsBackOnError(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := SaveInventory(ctx, database, []model.InventoryItem{{ID: 1, Name: "Tea", Location: "Pantry", RemainingRatio: 1, DateAdded: now, LastModified: now}}); err != nil {
		t.Fatal(err)
	}

	dup := []model.InventoryItem{
		{ID: 2, Name: "A", Location: "X", RemainingRatio: 1, DateAdded: now, LastModified: now},
		{ID: 2, Name: "B", Location: "X", RemainingRatio: 1, DateAdded: now, LastModified: now},
	}
	if err := SaveInventory(ctx, database, dup); err == nil {
		t.Fatal("expected duplicate id error")
	}

	got, _ := LoadInventory(ctx, database)
	if len(got) != 1 || got[0].Name != "Tea" {
		t.Fatalf("expected previous inventory after failed save, got %+v", got)
	}
}
