package api

import (
	"net/http"

	"github.com/erazemk/pantryscan/internal/pantry"
	"github.com/erazemk/pantryscan/internal/reconcile"
)

// ScanHandler resolves decoded barcodes.
type ScanHandler struct {
	Pantry *pantry.Controller
}

type scanRequest struct {
	Barcode string `json:"barcode"`
	AddNew  bool   `json:"add_new"`
	Refresh bool   `json:"refresh"`
}

// Scan handles POST /api/scan. With refresh set the product is re-fetched
// from the remote lookup.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		res *reconcile.ScanResult
		err error
	)
	if req.Refresh {
		res, err = h.Pantry.Refresh(r.Context(), req.Barcode)
	} else {
		res, err = h.Pantry.Scan(r.Context(), req.Barcode, req.AddNew)
	}
	if err != nil {
		writeError(w, r, err, "failed to resolve barcode")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}
