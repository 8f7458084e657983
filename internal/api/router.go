package api

import (
	"net/http"

	"github.com/erazemk/pantryscan/internal/pantry"
)

// NewRouter creates the API router with all endpoints registered. thumbs
// may be nil, in which case thumbnails are reported as unavailable.
func NewRouter(p *pantry.Controller, thumbs Thumbnailer) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Pantry: p, Thumbs: thumbs}
	viewHandler := &ViewHandler{Pantry: p}
	scanHandler := &ScanHandler{Pantry: p}
	locationsHandler := &LocationsHandler{Pantry: p}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("POST /api/items/bulk-delete", itemsHandler.BulkDelete)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /api/items/{id}/draft", itemsHandler.EditDraft)
	mux.HandleFunc("GET /api/items/{id}/thumbnail", itemsHandler.Thumbnail)
	mux.HandleFunc("GET /api/drafts/new", itemsHandler.NewDraft)

	// View state.
	mux.HandleFunc("GET /api/view", viewHandler.Get)
	mux.HandleFunc("PUT /api/view", viewHandler.Put)
	mux.HandleFunc("DELETE /api/view", viewHandler.Clear)
	mux.HandleFunc("GET /api/summary", viewHandler.Summary)

	// Selection.
	mux.HandleFunc("GET /api/selection", viewHandler.Selection)
	mux.HandleFunc("PUT /api/selection/{id}", viewHandler.Select)
	mux.HandleFunc("DELETE /api/selection/{id}", viewHandler.Deselect)
	mux.HandleFunc("DELETE /api/selection", viewHandler.ClearSelection)

	// Barcode scans.
	mux.HandleFunc("POST /api/scan", scanHandler.Scan)

	// Locations.
	mux.HandleFunc("GET /api/locations", locationsHandler.List)
	mux.HandleFunc("POST /api/locations", locationsHandler.Create)
	mux.HandleFunc("DELETE /api/locations/{name}", locationsHandler.Delete)

	return mux
}
