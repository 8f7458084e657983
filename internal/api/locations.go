package api

import (
	"net/http"
	"strings"

	"github.com/erazemk/pantryscan/internal/pantry"
)

// LocationsHandler lists and records storage locations.
type LocationsHandler struct {
	Pantry *pantry.Controller
}

type createLocationRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.Pantry.Locations(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to list locations")
		return
	}
	jsonResponse(w, http.StatusOK, names)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	l, err := h.Pantry.AddLocation(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err, "failed to add location")
		return
	}
	jsonResponse(w, http.StatusCreated, l)
}

// Delete handles DELETE /api/locations/{name}.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if err := h.Pantry.RemoveLocation(r.Context(), name); err != nil {
		writeError(w, r, err, "failed to delete location")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "location deleted"})
}
