package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// ErrEmptyBarcode is returned for a blank scan.
var ErrEmptyBarcode = errors.New("empty barcode")

// ProductCache is the local product-definition table keyed by barcode.
type ProductCache interface {
	GetProduct(ctx context.Context, barcode string) (*model.Product, error)
	SaveProduct(ctx context.Context, p model.Product) error
}

// Lookup fetches product metadata from a remote source.
type Lookup interface {
	Lookup(ctx context.Context, barcode string) (*model.Product, error)
}

// Invalidator is implemented by lookups that keep their own cache.
type Invalidator interface {
	Invalidate(ctx context.Context, barcode string) error
}

// Outcome names how a scan was resolved.
type Outcome string

// Scan outcomes.
const (
	// OutcomeMatches: the barcode is already in the inventory; the caller
	// offers edit/delete of Matches or adding a new entry anyway.
	OutcomeMatches Outcome = "matches"
	// OutcomeLocal: prefilled from the local product cache.
	OutcomeLocal Outcome = "local"
	// OutcomeRemote: prefilled from the remote lookup.
	OutcomeRemote Outcome = "remote"
)

// ScanResult is the state a scan leaves the add/edit flow in.
type ScanResult struct {
	Outcome Outcome               `json:"outcome"`
	Barcode string                `json:"barcode"`
	Matches []model.InventoryItem `json:"matches,omitempty"`
	Draft   *Draft                `json:"draft,omitempty"`
	Product *model.Product        `json:"product,omitempty"`
}

// Resolver runs a decoded barcode through local and remote lookup.
type Resolver struct {
	Cache  ProductCache
	Lookup Lookup
	Now    func() time.Time
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve handles one decoded barcode. Unless addNew is set, inventory
// items with the same barcode are returned for the caller to choose from.
// Otherwise the product cache is consulted, then the remote lookup; a
// remote hit is written back to the cache. Lookup failures are returned
// unchanged so callers can tell not-found from transport errors. If ctx is
// cancelled while the remote call is in flight, its result is discarded.
func (r *Resolver) Resolve(ctx context.Context, barcode string, items []model.InventoryItem, addNew bool) (*ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrEmptyBarcode
	}

	if !addNew {
		if matches := MatchBarcode(items, barcode); len(matches) > 0 {
			return &ScanResult{Outcome: OutcomeMatches, Barcode: barcode, Matches: matches}, nil
		}
	}

	if r.Cache != nil {
		p, err := r.Cache.GetProduct(ctx, barcode)
		if err != nil {
			slog.Warn("product cache read failed", "barcode", barcode, "error", err)
		} else if p != nil && p.Name != "" {
			return r.prefill(OutcomeLocal, barcode, *p), nil
		}
	}

	return r.remote(ctx, barcode)
}

// Refresh re-fetches barcode from the remote lookup, skipping inventory
// matches and the local product cache, and overwrites the cached product.
func (r *Resolver) Refresh(ctx context.Context, barcode string) (*ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, ErrEmptyBarcode
	}
	if inv, ok := r.Lookup.(Invalidator); ok {
		if err := inv.Invalidate(ctx, barcode); err != nil {
			slog.Warn("lookup cache invalidation failed", "barcode", barcode, "error", err)
		}
	}
	return r.remote(ctx, barcode)
}

func (r *Resolver) remote(ctx context.Context, barcode string) (*ScanResult, error) {
	if r.Lookup == nil {
		return nil, fmt.Errorf("looking up %s: no product lookup configured", barcode)
	}
	p, err := r.Lookup.Lookup(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.Barcode = barcode

	if r.Cache != nil {
		if err := r.Cache.SaveProduct(ctx, *p); err != nil {
			slog.Warn("product cache write failed", "barcode", barcode, "error", err)
		}
	}
	return r.prefill(OutcomeRemote, barcode, *p), nil
}

func (r *Resolver) prefill(outcome Outcome, barcode string, p model.Product) *ScanResult {
	d := PrefillFromProduct(NewDraft(r.now()), p, r.now())
	d.Barcode = barcode
	return &ScanResult{Outcome: outcome, Barcode: barcode, Draft: &d, Product: &p}
}
