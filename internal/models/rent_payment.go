package models

import (
	"time"

	"pg-backend/internal/rentcycle"
)

type RentPayment struct {
	ID               int       `json:"id"`
	ReferenceID      string    `json:"reference_id"` // UUID, for receipts and dedup
	ReceiptNumber    string    `json:"receipt_number"`
	TenantID         int       `json:"tenant_id"`
	PGID             int       `json:"pg_id"`
	RoomID           int       `json:"room_id"`
	BedID            int       `json:"bed_id"`
	CycleID          int       `json:"cycle_id"`
	AmountPaid       float64   `json:"amount_paid"`
	ActualRentAmount float64   `json:"actual_rent_amount"`
	PaymentDate      time.Time `json:"payment_date"`
	PaymentMethod    string    `json:"payment_method"`
	Status           string    `json:"status"` // PAID, PARTIAL, PENDING or VOID
	Remarks          string    `json:"remarks"`
	RecordedByUserID int       `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateTenantPaymentRequest is the wire body for POST /api/rent-payments.
// Status is derived server-side from the amount comparison, never trusted
// from the caller.
type CreateTenantPaymentRequest struct {
	TenantID         int     `json:"tenant_id"`
	PGID             int     `json:"pg_id"`
	RoomID           int     `json:"room_id"`
	BedID            int     `json:"bed_id"`
	CycleID          int     `json:"cycle_id"`
	AmountPaid       float64 `json:"amount_paid"`
	ActualRentAmount float64 `json:"actual_rent_amount"`
	PaymentDate      string  `json:"payment_date"` // YYYY-MM-DD
	PaymentMethod    string  `json:"payment_method"`
	Remarks          string  `json:"remarks"`
}

// GapResponse is the payload of GET /api/rent-payments/gaps/{tenant_id}
type GapResponse struct {
	HasGaps bool            `json:"hasGaps"`
	Gaps    []rentcycle.Gap `json:"gaps"`
}

// UpdatePaymentStatusRequest represents the request body for a status update
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}
