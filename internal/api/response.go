package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/pantryscan/internal/lookup"
	"github.com/erazemk/pantryscan/internal/pantry"
	"github.com/erazemk/pantryscan/internal/reconcile"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

type validationResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

// writeError maps domain errors to HTTP status codes. Unknown errors are
// logged and reported as 500 with the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var verr *reconcile.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusBadRequest, validationResponse{Error: verr.Error(), Missing: verr.Missing, Invalid: verr.Invalid})
	case errors.Is(err, pantry.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, reconcile.ErrEmptyBarcode):
		jsonError(w, http.StatusBadRequest, "barcode required")
	case errors.Is(err, lookup.ErrNotFound):
		jsonError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, lookup.ErrTransport):
		jsonError(w, http.StatusBadGateway, "product lookup unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		jsonError(w, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		// The client is gone.
	default:
		slog.Error(message, "error", err, "request_id", RequestID(r.Context()))
		jsonError(w, http.StatusInternalServerError, message)
	}
}
