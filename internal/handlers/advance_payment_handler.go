package handlers

import (
	"encoding/json"
	"net/http"

	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type AdvancePaymentHandler struct {
	advances *services.AdvancePaymentService
}

func NewAdvancePaymentHandler(advances *services.AdvancePaymentService) *AdvancePaymentHandler {
	return &AdvancePaymentHandler{advances: advances}
}

// Create records a security deposit as HELD.
// POST /api/advance-payments
func (h *AdvancePaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdvancePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	advance, err := h.advances.RecordAdvance(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, advance)
}

// ListByTenant returns a tenant's advance history.
// GET /api/advance-payments/tenant/{tenant_id}
func (h *AdvancePaymentHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(w, r, "tenant_id")
	if !ok {
		return
	}

	advances, err := h.advances.ListByTenant(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, advances)
}

// Refund releases a held advance.
// POST /api/advance-payments/{id}/refund
func (h *AdvancePaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.advances.Refund(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Advance refunded"})
}
