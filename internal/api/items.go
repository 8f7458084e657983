package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/pantryscan/internal/imaging"
	"github.com/erazemk/pantryscan/internal/inventory"
	"github.com/erazemk/pantryscan/internal/pantry"
	"github.com/erazemk/pantryscan/internal/reconcile"
)

// Thumbnailer fetches and shrinks a remote product image.
type Thumbnailer interface {
	Fetch(ctx context.Context, url string) (*imaging.Thumbnail, error)
}

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Pantry *pantry.Controller
	Thumbs Thumbnailer
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted []int64 `json:"deleted"`
}

// viewFromQuery overlays query parameters on base. Parameters that are
// absent keep base's value.
func viewFromQuery(base inventory.View, q url.Values) (inventory.View, int, int, error) {
	v := base
	page, size := 1, 0

	if q.Has("search") {
		v.Filter.Search = q.Get("search")
	}
	if q.Has("location") {
		v.Filter.Locations = nil
		for _, l := range q["location"] {
			if l != "" {
				v.Filter.Locations = append(v.Filter.Locations, l)
			}
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"spoiled", &v.Filter.Spoiled},
		{"expiring", &v.Filter.ExpiringSoon},
		{"selected", &v.Filter.SelectedOnly},
	}
	for _, b := range bools {
		if !q.Has(b.key) {
			continue
		}
		val, err := strconv.ParseBool(q.Get(b.key))
		if err != nil {
			return v, 0, 0, badParam(b.key)
		}
		*b.dst = val
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"expiring_days", &v.Filter.ExpiringDays},
		{"page", &page},
		{"page_size", &size},
	}
	for _, i := range ints {
		if !q.Has(i.key) {
			continue
		}
		val, err := strconv.Atoi(q.Get(i.key))
		if err != nil {
			return v, 0, 0, badParam(i.key)
		}
		*i.dst = val
	}

	if q.Has("sort") {
		s, err := inventory.ParseSort(q.Get("sort"))
		if err != nil {
			return v, 0, 0, err
		}
		v.Sort = s
	}
	return v, page, size, nil
}

func badParam(key string) error {
	return fmt.Errorf("invalid query parameter: %s", key)
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	v, page, size, err := viewFromQuery(h.Pantry.View(), r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, h.Pantry.Query(v, page, size))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	entry, err := h.Pantry.Entry(id)
	if err != nil {
		writeError(w, r, err, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d reconcile.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = 0

	item, err := h.Pantry.Submit(r.Context(), d)
	if err != nil {
		writeError(w, r, err, "failed to create item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var d reconcile.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = id

	item, err := h.Pantry.Submit(r.Context(), d)
	if err != nil {
		writeError(w, r, err, "failed to update item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Pantry.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// BulkDelete handles POST /api/items/bulk-delete. An empty id list deletes
// the current selection.
func (h *ItemsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var deleted []int64
	var err error
	if len(req.IDs) == 0 {
		deleted, err = h.Pantry.DeleteSelected(r.Context())
	} else {
		deleted, err = h.Pantry.DeleteMany(r.Context(), req.IDs)
	}
	if err != nil {
		writeError(w, r, err, "failed to delete items")
		return
	}
	jsonResponse(w, http.StatusOK, bulkDeleteResponse{Deleted: deleted})
}

// NewDraft handles GET /api/drafts/new.
func (h *ItemsHandler) NewDraft(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Pantry.NewDraft())
}

// EditDraft handles GET /api/items/{id}/draft.
func (h *ItemsHandler) EditDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	d, err := h.Pantry.EditDraft(id)
	if err != nil {
		writeError(w, r, err, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, d)
}

// Thumbnail handles GET /api/items/{id}/thumbnail. Thumbnails are made on
// request and never stored.
func (h *ItemsHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Pantry.Get(id)
	if err != nil {
		writeError(w, r, err, "failed to get item")
		return
	}
	if item.ImageSmallURL == "" {
		jsonError(w, http.StatusNotFound, "item has no image")
		return
	}
	if h.Thumbs == nil {
		jsonError(w, http.StatusServiceUnavailable, "thumbnails unavailable")
		return
	}

	th, err := h.Thumbs.Fetch(r.Context(), item.ImageSmallURL)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "failed to fetch image")
		return
	}

	w.Header().Set("Content-Type", th.MIME)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(th.Data)
}
