package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/pantryscan/internal/model"
)

// Store binds the package functions to one database for callers that
// depend on interfaces.
type Store struct {
	DB *sql.DB
}

// LoadInventory calls LoadInventory on s.DB.
func (s Store) LoadInventory(ctx context.Context) ([]model.InventoryItem, error) {
	return LoadInventory(ctx, s.DB)
}

// SaveInventory calls SaveInventory on s.DB.
func (s Store) SaveInventory(ctx context.Context, items []model.InventoryItem) error {
	return SaveInventory(ctx, s.DB, items)
}

// GetProduct calls GetProduct on s.DB.
func (s Store) GetProduct(ctx context.Context, barcode string) (*model.Product, error) {
	return GetProduct(ctx, s.DB, barcode)
}

// SaveProduct calls SaveProduct on s.DB.
func (s Store) SaveProduct(ctx context.Context, p model.Product) error {
	return SaveProduct(ctx, s.DB, p)
}

// ListLocations calls ListLocations on s.DB.
func (s Store) ListLocations(ctx context.Context) ([]model.Location, error) {
	return ListLocations(ctx, s.DB)
}

// AddLocation calls AddLocation on s.DB.
func (s Store) AddLocation(ctx context.Context, name string) (*model.Location, error) {
	return AddLocation(ctx, s.DB, name)
}

// DeleteLocation calls DeleteLocation on s.DB.
func (s Store) DeleteLocation(ctx context.Context, name string) error {
	return DeleteLocation(ctx, s.DB, name)
}
