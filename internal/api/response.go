package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/razdelilnica/internal/store"
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

// storeError maps a store error kind to an HTTP response. Validation errors
// keep their message (it carries the offending values); anything unrecognized
// is an internal error and stays opaque.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrPolicyCapExceeded):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrRecipientNotFound),
		errors.Is(err, store.ErrDonationNotFound),
		errors.Is(err, store.ErrAssignmentNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateItem),
		errors.Is(err, store.ErrItemInUse),
		errors.Is(err, store.ErrRecipientInUse),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrConcurrentModification):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrStoreUnavailable):
		jsonError(w, http.StatusServiceUnavailable, "store unavailable, retry later")
	default:
		slog.Error("store operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
