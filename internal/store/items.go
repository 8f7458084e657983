package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// SeedItems returns the sample collection shown before anything has been
// saved.
func SeedItems() []model.InventoryItem {
	milkAdded := time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)
	milkExpires := time.Date(2025, 10, 26, 10, 0, 0, 0, time.UTC)
	bananasAdded := time.Date(2025, 9, 29, 11, 30, 0, 0, time.UTC)
	bananasExpire := time.Date(2025, 10, 24, 11, 30, 0, 0, time.UTC)

	return []model.InventoryItem{
		{
			ID:             1,
			Name:           "Milk",
			Location:       "Refrigerator",
			Quantity:       1,
			Unit:           "Liter",
			RemainingRatio: 0.75,
			PerishableDate: &milkExpires,
			DateAdded:      milkAdded,
			LastModified:   milkAdded,
		},
		{
			ID:             2,
			Name:           "Bananas",
			Location:       "Counter",
			IsDiscrete:     true,
			Quantity:       6,
			Unit:           "units",
			RemainingRatio: 1,
			PerishableDate: &bananasExpire,
			DateAdded:      bananasAdded,
			LastModified:   bananasAdded,
		},
	}
}

const itemColumns = `id, name, barcode, location, is_discrete, quantity, unit, remaining_ratio,
		        perishable_date, date_added, last_modified, image_small_url, url`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (model.InventoryItem, error) {
	var item model.InventoryItem
	var perishable sql.NullTime
	err := row.Scan(&item.ID, &item.Name, &item.Barcode, &item.Location, &item.IsDiscrete,
		&item.Quantity, &item.Unit, &item.RemainingRatio, &perishable,
		&item.DateAdded, &item.LastModified, &item.ImageSmallURL, &item.URL)
	if err != nil {
		return item, err
	}
	if perishable.Valid {
		t := perishable.Time.UTC()
		item.PerishableDate = &t
	}
	item.DateAdded = item.DateAdded.UTC()
	item.LastModified = item.LastModified.UTC()
	return item, nil
}

// LoadInventory returns the stored collection in saved order. Before the
// first SaveInventory it returns SeedItems.
func LoadInventory(ctx context.Context, db *sql.DB) ([]model.InventoryItem, error) {
	_, saved, err := GetSetting(ctx, db, settingInventorySaved)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	if !saved {
		return SeedItems(), nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	defer rows.Close()

	items := []model.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveInventory replaces the stored collection with items in a single
// transaction.
func SaveInventory(ctx context.Context, db *sql.DB, items []model.InventoryItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (position, `+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		var perishable sql.NullTime
		if item.PerishableDate != nil {
			perishable = sql.NullTime{Time: item.PerishableDate.UTC(), Valid: true}
		}
		_, err := stmt.ExecContext(ctx, i,
			item.ID, item.Name, item.Barcode, item.Location, item.IsDiscrete,
			item.Quantity, item.Unit, item.RemainingRatio, perishable,
			item.DateAdded.UTC(), item.LastModified.UTC(), item.ImageSmallURL, item.URL,
		)
		if err != nil {
			return fmt.Errorf("saving item %d: %w", item.ID, err)
		}
	}

	if err := setSetting(ctx, tx, settingInventorySaved, "1"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing inventory: %w", err)
	}
	return nil
}
