package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/policy"
	"github.com/erazemk/razdelilnica/internal/store"
)

// DistributionsHandler handles the distribution ledger endpoints.
type DistributionsHandler struct {
	DB       *sql.DB
	Policies policy.Selector
}

type assignRequest struct {
	ItemID      int64 `json:"item_id"`
	RecipientID int64 `json:"recipient_id"`
	DonationID  int64 `json:"donation_id"`
	Quantity    int   `json:"quantity"`
}

// Assign handles POST /api/distributions.
func (h *DistributionsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	distribution, err := store.Assign(r.Context(), h.DB, h.Policies,
		req.ItemID, req.RecipientID, req.DonationID, req.Quantity)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, distribution)
}

// Reverse handles DELETE /api/distributions/{item_id}/{recipient_id}.
func (h *DistributionsHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("item_id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	recipientID, err := strconv.ParseInt(r.PathValue("recipient_id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	if err := store.Reverse(r.Context(), h.DB, itemID, recipientID); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "distribution reversed"})
}

// List handles GET /api/distributions.
func (h *DistributionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var donationID int64
	if v := r.URL.Query().Get("donation_id"); v != "" {
		var err error
		donationID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid donation id")
			return
		}
	}

	distributions, err := store.ListDistributions(r.Context(), h.DB, donationID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list distributions")
		return
	}
	if distributions == nil {
		distributions = []model.Distribution{}
	}
	jsonResponse(w, http.StatusOK, distributions)
}
