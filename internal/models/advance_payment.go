package models

import "time"

// Advance payment (security deposit) states
const (
	AdvanceHeld     = "HELD"
	AdvanceRefunded = "REFUNDED"
)

type AdvancePayment struct {
	ID            int        `json:"id"`
	TenantID      int        `json:"tenant_id"`
	PGID          int        `json:"pg_id"`
	Amount        float64    `json:"amount"`
	PaymentDate   time.Time  `json:"payment_date"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
	Remarks       string     `json:"remarks"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateAdvancePaymentRequest represents the request body for recording an advance
type CreateAdvancePaymentRequest struct {
	TenantID      int     `json:"tenant_id"`
	PGID          int     `json:"pg_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"` // YYYY-MM-DD
	PaymentMethod string  `json:"payment_method"`
	Remarks       string  `json:"remarks"`
}
