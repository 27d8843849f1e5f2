package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type RentPaymentHandler struct {
	payments *services.RentPaymentService
	receipts *services.ReceiptService
}

func NewRentPaymentHandler(payments *services.RentPaymentService, receipts *services.ReceiptService) *RentPaymentHandler {
	return &RentPaymentHandler{payments: payments, receipts: receipts}
}

// Gaps returns the tenant's unpaid or underpaid billing cycles.
// GET /api/rent-payments/gaps/{tenant_id}
func (h *RentPaymentHandler) Gaps(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(w, r, "tenant_id")
	if !ok {
		return
	}

	resp, err := h.payments.DetectGaps(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// NextDates suggests the period the next payment should cover.
// GET /api/rent-payments/next-dates/{tenant_id}?rentCycleType=MONTHLY&skipGaps=false
func (h *RentPaymentHandler) NextDates(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(w, r, "tenant_id")
	if !ok {
		return
	}

	cycleType := r.URL.Query().Get("rentCycleType")
	skipGaps := r.URL.Query().Get("skipGaps") == "true"

	suggestion, err := h.payments.NextDates(r.Context(), tenantID, cycleType, skipGaps)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, suggestion)
}

// Create records a rent payment.
// POST /api/rent-payments
func (h *RentPaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTenantPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	payment, err := h.payments.CreatePayment(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}

// Get returns one payment.
// GET /api/rent-payments/{id}
func (h *RentPaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payment, err := h.payments.GetPayment(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}

// ListByTenant returns a tenant's payment history, newest first.
// GET /api/rent-payments/tenant/{tenant_id}
func (h *RentPaymentHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(w, r, "tenant_id")
	if !ok {
		return
	}

	payments, err := h.payments.ListPaymentsByTenant(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// List returns all payments for a PG.
// GET /api/rent-payments?pg_id=1
func (h *RentPaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	pgID := queryInt(r, "pg_id", 1)

	payments, err := h.payments.ListPayments(r.Context(), pgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// UpdateStatus overrides a payment's status.
// PATCH /api/rent-payments/{id}/status
func (h *RentPaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.payments.UpdateStatus(r.Context(), id, req.Status); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

// Void excludes a payment from due computations.
// POST /api/rent-payments/{id}/void
func (h *RentPaymentHandler) Void(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payments.VoidPayment(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Payment voided"})
}

// Receipt streams the PDF receipt for a payment.
// GET /api/rent-payments/{id}/receipt
func (h *RentPaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.receipts.GeneratePDF(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
