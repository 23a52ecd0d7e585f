package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/store"
)

// DonationsHandler handles donation drive endpoints.
type DonationsHandler struct {
	DB *sql.DB
}

type createDonationRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// List handles GET /api/donations.
func (h *DonationsHandler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := store.ListDonations(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list donations")
		return
	}
	if donations == nil {
		donations = []model.Donation{}
	}
	jsonResponse(w, http.StatusOK, donations)
}

// Create handles POST /api/donations.
func (h *DonationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if !model.ValidDonationType(req.Type) {
		jsonError(w, http.StatusBadRequest, "invalid donation type")
		return
	}

	donation, err := store.CreateDonation(r.Context(), h.DB, req.Name, req.Type)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create donation")
		return
	}

	jsonResponse(w, http.StatusCreated, donation)
}

// Get handles GET /api/donations/{id}.
func (h *DonationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	donation, err := store.GetDonation(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get donation")
		return
	}
	if donation == nil {
		jsonError(w, http.StatusNotFound, "donation not found")
		return
	}

	jsonResponse(w, http.StatusOK, donation)
}
