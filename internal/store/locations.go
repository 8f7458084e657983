package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/pantryscan/internal/model"
)

// AddLocation records a named storage location. Adding an existing name
// returns the stored row.
func AddLocation(ctx context.Context, db *sql.DB, name string) (*model.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("location name is required")
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO locations (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("adding location: %w", err)
	}

	l := &model.Location{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM locations WHERE name = ?`, name,
	).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return l, nil
}

// ListLocations returns all recorded locations ordered by name.
func ListLocations(ctx context.Context, db *sql.DB) ([]model.Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM locations ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// DeleteLocation removes a recorded location. Items keep their location
// text.
func DeleteLocation(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM locations WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	return nil
}
