// Package jobs runs periodic background work against the pantry.
package jobs

import (
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/pantryscan/internal/inventory"
	"github.com/erazemk/pantryscan/internal/model"
)

// Source is the read side of the pantry used by the sweep.
type Source interface {
	Items() []model.InventoryItem
	ExpiringDays() int
}

// Report is the outcome of one sweep. Newly* only list items whose class
// changed since the previous sweep.
type Report struct {
	Summary       inventory.Summary
	NewlyExpired  []model.InventoryItem
	NewlyExpiring []model.InventoryItem
}

// Sweeper classifies every item and logs items that crossed into
// expiring-soon or expired since the last run.
type Sweeper struct {
	src Source
	now func() time.Time

	mu   sync.Mutex
	last map[int64]inventory.Spoilage
}

// NewSweeper returns a Sweeper over src. A nil now uses time.Now.
func NewSweeper(src Source, now func() time.Time) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{src: src, now: now, last: make(map[int64]inventory.Spoilage)}
}

// Run performs one sweep.
func (s *Sweeper) Run() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.src.Items()
	now := s.now()
	summary := inventory.Summarize(items, now, s.src.ExpiringDays())
	r := Report{Summary: summary}

	current := make(map[int64]inventory.Spoilage)
	for _, item := range items {
		class := inventory.ClassifyItem(item, now, summary.ExpiringDays)
		current[item.ID] = class
		if s.last[item.ID] == class {
			continue
		}
		switch class {
		case inventory.Expired:
			r.NewlyExpired = append(r.NewlyExpired, item)
			slog.Warn("item expired", "id", item.ID, "name", item.Name, "location", item.Location)
		case inventory.ExpiringSoon:
			r.NewlyExpiring = append(r.NewlyExpiring, item)
			slog.Info("item expiring soon", "id", item.ID, "name", item.Name, "location", item.Location)
		}
	}
	s.last = current

	slog.Info("spoilage sweep",
		"total", summary.Total,
		"expired", summary.Expired,
		"expiring_soon", summary.ExpiringSoon,
		"normal", summary.Normal,
	)
	return r
}
