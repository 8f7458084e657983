// Package pantry holds the in-memory inventory and the view state around
// it, persisting every change through a Store.
package pantry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/pantryscan/internal/inventory"
	"github.com/erazemk/pantryscan/internal/model"
	"github.com/erazemk/pantryscan/internal/reconcile"
)

// ErrItemNotFound is returned for operations on unknown ids.
var ErrItemNotFound = reconcile.ErrItemNotFound

// Store persists the inventory and the known locations.
type Store interface {
	LoadInventory(ctx context.Context) ([]model.InventoryItem, error)
	SaveInventory(ctx context.Context, items []model.InventoryItem) error
	ListLocations(ctx context.Context) ([]model.Location, error)
	AddLocation(ctx context.Context, name string) (*model.Location, error)
	DeleteLocation(ctx context.Context, name string) error
}

// Options configures a Controller. Zero values pick the defaults. A nil
// ExpiringDays uses inventory.DefaultExpiringDays; zero is a valid
// threshold.
type Options struct {
	Now          func() time.Time
	PageSize     int
	ExpiringDays *int
}

// Controller serializes access to the inventory. Each mutation computes a
// new collection, saves it, and only then replaces the in-memory copy, so
// a failed save leaves the state untouched.
type Controller struct {
	store    Store
	resolver *reconcile.Resolver
	now      func() time.Time
	pageSize int
	defaults inventory.View

	mu       sync.Mutex
	items    []model.InventoryItem
	view     inventory.View
	selected inventory.Selection
}

// New loads the inventory from store and returns a ready Controller.
func New(ctx context.Context, store Store, resolver *reconcile.Resolver, opts Options) (*Controller, error) {
	c := &Controller{
		store:    store,
		resolver: resolver,
		now:      opts.Now,
		pageSize: opts.PageSize,
		defaults: inventory.DefaultView(),
		selected: inventory.Selection{},
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.pageSize <= 0 {
		c.pageSize = inventory.DefaultPageSize
	}
	if opts.ExpiringDays != nil {
		c.defaults.Filter.ExpiringDays = max(*opts.ExpiringDays, 0)
	}
	c.view = c.defaults

	items, err := store.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	c.items = items
	slog.Info("inventory loaded", "items", len(items))
	return c, nil
}

// Items returns a copy of the full collection in stored order.
func (c *Controller) Items() []model.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Get returns the item with id.
func (c *Controller) Get(id int64) (model.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return model.InventoryItem{}, ErrItemNotFound
	}
	return c.items[i], nil
}

// Entry returns the item with id annotated with its spoilage state under
// the current threshold.
func (c *Controller) Entry(id int64) (inventory.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return inventory.Entry{}, ErrItemNotFound
	}
	return inventory.Annotate(c.items[i], c.now(), c.view.Filter.Threshold()), nil
}

func (c *Controller) indexOf(id int64) int {
	return slices.IndexFunc(c.items, func(it model.InventoryItem) bool { return it.ID == id })
}

// Query returns one page of the collection under view v. A non-positive
// size uses the configured page size.
func (c *Controller) Query(v inventory.View, page, size int) inventory.Page {
	if size <= 0 {
		size = c.pageSize
	}
	c.mu.Lock()
	entries := inventory.Query(c.items, v, c.selected, c.now())
	c.mu.Unlock()
	return inventory.Paginate(entries, page, size)
}

// View returns the current filter and sort state.
func (c *Controller) View() inventory.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view
	v.Filter.Locations = slices.Clone(v.Filter.Locations)
	return v
}

// SetView replaces the filter and sort state.
func (c *Controller) SetView(v inventory.View) error {
	if err := v.Sort.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v.Filter.Locations = slices.Clone(v.Filter.Locations)
	c.view = v
	return nil
}

// ClearFilters restores the default filters and sort.
func (c *Controller) ClearFilters() inventory.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = c.defaults
	return c.view
}

// Summary counts the collection per spoilage class using the current
// expiring-soon threshold.
func (c *Controller) Summary() inventory.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return inventory.Summarize(c.items, c.now(), c.view.Filter.Threshold())
}

// ExpiringDays returns the expiring-soon threshold of the current view.
func (c *Controller) ExpiringDays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Filter.Threshold()
}

// NewDraft returns the defaults for an empty add form.
func (c *Controller) NewDraft() reconcile.Draft {
	return reconcile.NewDraft(c.now())
}

// EditDraft returns the edit form for an existing item.
func (c *Controller) EditDraft(id int64) (reconcile.Draft, error) {
	item, err := c.Get(id)
	if err != nil {
		return reconcile.Draft{}, err
	}
	return reconcile.DraftFromItem(item), nil
}

// Submit creates or updates an item from d and persists the collection.
func (c *Controller) Submit(ctx context.Context, d reconcile.Draft) (model.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, item, err := reconcile.Commit(c.items, d, c.now())
	if err != nil {
		return model.InventoryItem{}, err
	}
	if err := c.store.SaveInventory(ctx, items); err != nil {
		return model.InventoryItem{}, fmt.Errorf("saving inventory: %w", err)
	}
	c.items = items

	if d.ID != 0 {
		slog.Info("item updated", "id", item.ID, "name", item.Name)
	} else {
		slog.Info("item added", "id", item.ID, "name", item.Name, "barcode", item.Barcode)
	}
	return item, nil
}

// Delete removes a single item.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	removed, err := c.DeleteMany(ctx, []int64{id})
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteMany removes every listed item that exists and returns the ids
// that were removed. Removed ids leave the selection too.
func (c *Controller) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteLocked(ctx, ids)
}

// DeleteSelected removes every selected item and clears the selection.
func (c *Controller) DeleteSelected(ctx context.Context) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteLocked(ctx, c.selected.IDs())
}

func (c *Controller) deleteLocked(ctx context.Context, ids []int64) ([]int64, error) {
	items, removed := reconcile.Delete(c.items, ids...)
	if len(removed) == 0 {
		return []int64{}, nil
	}
	if err := c.store.SaveInventory(ctx, items); err != nil {
		return nil, fmt.Errorf("saving inventory: %w", err)
	}
	c.items = items
	for _, id := range removed {
		delete(c.selected, id)
	}
	slog.Info("items deleted", "count", len(removed))
	return removed, nil
}

// Select marks an item as selected.
func (c *Controller) Select(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return ErrItemNotFound
	}
	c.selected[id] = struct{}{}
	return nil
}

// Deselect unmarks an item. Unknown ids are ignored.
func (c *Controller) Deselect(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.selected, id)
}

// ClearSelection unmarks every item.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.selected)
}

// Selected returns the selected ids in ascending order.
func (c *Controller) Selected() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected.IDs()
}

// Scan resolves a decoded barcode against the inventory, the product
// cache and the remote lookup. The lock is not held during the remote
// call.
func (c *Controller) Scan(ctx context.Context, barcode string, addNew bool) (*reconcile.ScanResult, error) {
	if c.resolver == nil {
		return nil, errors.New("barcode lookup is not configured")
	}
	res, err := c.resolver.Resolve(ctx, barcode, c.Items(), addNew)
	if err != nil {
		slog.Warn("scan not resolved", "barcode", barcode, "error", err)
		return nil, err
	}
	slog.Info("scan resolved", "barcode", res.Barcode, "outcome", res.Outcome)
	return res, nil
}

// Refresh re-fetches product data for barcode from the remote lookup and
// returns a prefilled add draft.
func (c *Controller) Refresh(ctx context.Context, barcode string) (*reconcile.ScanResult, error) {
	if c.resolver == nil {
		return nil, errors.New("barcode lookup is not configured")
	}
	res, err := c.resolver.Refresh(ctx, barcode)
	if err != nil {
		slog.Warn("product refresh failed", "barcode", barcode, "error", err)
		return nil, err
	}
	slog.Info("product refreshed", "barcode", res.Barcode)
	return res, nil
}

// Locations returns the location names in use merged with the recorded
// ones.
func (c *Controller) Locations(ctx context.Context) ([]string, error) {
	known, err := c.store.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(known))
	for i, l := range known {
		names[i] = l.Name
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := inventory.Locations(c.items, names...)
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// AddLocation records a location name for the location picker.
func (c *Controller) AddLocation(ctx context.Context, name string) (*model.Location, error) {
	return c.store.AddLocation(ctx, name)
}

// RemoveLocation forgets a recorded location. Items stored there keep it
// and it stays listed while any item uses it.
func (c *Controller) RemoveLocation(ctx context.Context, name string) error {
	return c.store.DeleteLocation(ctx, name)
}
