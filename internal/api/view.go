package api

import (
	"net/http"

	"github.com/erazemk/pantryscan/internal/pantry"
)

// ViewHandler exposes the filter, sort and selection state.
type ViewHandler struct {
	Pantry *pantry.Controller
}

type selectionResponse struct {
	IDs []int64 `json:"ids"`
}

// Get handles GET /api/view.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Pantry.View())
}

// Put handles PUT /api/view.
func (h *ViewHandler) Put(w http.ResponseWriter, r *http.Request) {
	v := h.Pantry.View()
	if err := decodeJSON(r, &v); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Pantry.SetView(v); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, h.Pantry.View())
}

// Clear handles DELETE /api/view.
func (h *ViewHandler) Clear(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Pantry.ClearFilters())
}

// Summary handles GET /api/summary.
func (h *ViewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Pantry.Summary())
}

// Selection handles GET /api/selection.
func (h *ViewHandler) Selection(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, selectionResponse{IDs: h.Pantry.Selected()})
}

// Select handles PUT /api/selection/{id}.
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.Pantry.Select(id); err != nil {
		writeError(w, r, err, "failed to select item")
		return
	}
	jsonResponse(w, http.StatusOK, selectionResponse{IDs: h.Pantry.Selected()})
}

// Deselect handles DELETE /api/selection/{id}.
func (h *ViewHandler) Deselect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	h.Pantry.Deselect(id)
	jsonResponse(w, http.StatusOK, selectionResponse{IDs: h.Pantry.Selected()})
}

// ClearSelection handles DELETE /api/selection.
func (h *ViewHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.Pantry.ClearSelection()
	jsonResponse(w, http.StatusOK, selectionResponse{IDs: []int64{}})
}
