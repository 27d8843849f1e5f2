package models

import "time"

// Subscription order states, mirroring the Razorpay order lifecycle
const (
	SubscriptionCreated = "CREATED"
	SubscriptionPaid    = "PAID"
	SubscriptionFailed  = "FAILED"
)

// SubscriptionOrder is an owner-facing subscription purchase processed
// through Razorpay.
type SubscriptionOrder struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	PlanCode          string    `json:"plan_code"`
	Amount            float64   `json:"amount"` // rupees
	Currency          string    `json:"currency"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateSubscriptionOrderRequest represents the request body for starting a
// subscription purchase
type CreateSubscriptionOrderRequest struct {
	PlanCode string  `json:"plan_code"`
	Amount   float64 `json:"amount"`
}

// VerifySubscriptionRequest carries the checkout callback fields Razorpay
// returns to the frontend after payment
type VerifySubscriptionRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
