package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/store"
)

// RecipientsHandler handles recipient directory endpoints.
type RecipientsHandler struct {
	DB *sql.DB
}

type recipientRequest struct {
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	EmergencyContact string `json:"emergency_contact"`
}

func (req *recipientRequest) validate() string {
	if req.Name == "" {
		return "name required"
	}
	if req.Kind == "" {
		req.Kind = model.RecipientIndividual
	}
	if !model.ValidRecipientKind(req.Kind) {
		return "invalid recipient kind"
	}
	return ""
}

func (req *recipientRequest) toModel() model.Recipient {
	return model.Recipient{
		Name:             req.Name,
		Kind:             req.Kind,
		Gender:           req.Gender,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		EmergencyContact: req.EmergencyContact,
	}
}

// List handles GET /api/recipients.
func (h *RecipientsHandler) List(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	recipients, err := store.ListRecipients(r.Context(), h.DB, name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list recipients")
		return
	}
	if recipients == nil {
		recipients = []model.Recipient{}
	}
	jsonResponse(w, http.StatusOK, recipients)
}

// Create handles POST /api/recipients.
func (h *RecipientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipientRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	recipient, err := store.CreateRecipient(r.Context(), h.DB, req.toModel())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create recipient")
		return
	}

	jsonResponse(w, http.StatusCreated, recipient)
}

// Get handles GET /api/recipients/{id}.
func (h *RecipientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	recipient, err := store.GetRecipient(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get recipient")
		return
	}
	if recipient == nil {
		jsonError(w, http.StatusNotFound, "recipient not found")
		return
	}

	jsonResponse(w, http.StatusOK, recipient)
}

// Update handles PUT /api/recipients/{id}.
func (h *RecipientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	var req recipientRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	if err := store.UpdateRecipient(r.Context(), h.DB, id, req.toModel()); err != nil {
		storeError(w, err)
		return
	}

	recipient, _ := store.GetRecipient(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, recipient)
}

// Delete handles DELETE /api/recipients/{id}.
func (h *RecipientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	if err := store.DeleteRecipient(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "recipient deleted"})
}

// GetDistributions handles GET /api/recipients/{id}/distributions.
func (h *RecipientsHandler) GetDistributions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	distributions, err := store.ListRecipientDistributions(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list recipient distributions")
		return
	}
	if distributions == nil {
		distributions = []model.Distribution{}
	}
	jsonResponse(w, http.StatusOK, distributions)
}
