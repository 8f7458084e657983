package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// GetProduct returns a cached product definition by barcode.
func GetProduct(ctx context.Context, db *sql.DB, barcode string) (*model.Product, error) {
	p := &model.Product{}
	err := db.QueryRowContext(ctx,
		`SELECT barcode, name, quantity, image_small_url, image_front_url, url, fetched_at
		 FROM products WHERE barcode = ?`, barcode,
	).Scan(&p.Barcode, &p.Name, &p.Quantity, &p.ImageSmallURL, &p.ImageFrontURL, &p.URL, &p.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	p.FetchedAt = p.FetchedAt.UTC()
	return p, nil
}

// SaveProduct inserts or replaces a product definition. A zero FetchedAt
// is stored as the current time.
func SaveProduct(ctx context.Context, db *sql.DB, p model.Product) error {
	if p.Barcode == "" {
		return fmt.Errorf("saving product: empty barcode")
	}
	if p.FetchedAt.IsZero() {
		p.FetchedAt = time.Now()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO products (barcode, name, quantity, image_small_url, image_front_url, url, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(barcode) DO UPDATE SET
		     name = excluded.name,
		     quantity = excluded.quantity,
		     image_small_url = excluded.image_small_url,
		     image_front_url = excluded.image_front_url,
		     url = excluded.url,
		     fetched_at = excluded.fetched_at`,
		p.Barcode, p.Name, p.Quantity, p.ImageSmallURL, p.ImageFrontURL, p.URL, p.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}
