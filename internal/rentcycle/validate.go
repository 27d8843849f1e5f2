package rentcycle

import "math"

// PaymentForm is the client-side view of a rent payment about to be
// submitted. Room and bed come from the tenant's current allocation.
type PaymentForm struct {
	TenantID         int
	PGID             int
	RoomID           int
	BedID            int
	CycleID          int
	AmountPaid       float64
	ActualRentAmount float64
	PaymentDate      string
	PaymentMethod    string
	Remarks          string
}

// FieldError reports which form field failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateSubmission checks a payment form before any side effect. The first
// failing rule aborts with a field-specific error; a nil return means the
// form is safe to submit.
func ValidateSubmission(f PaymentForm) error {
	if !isFinite(f.AmountPaid) || f.AmountPaid <= 0 {
		return &FieldError{Field: "amount_paid", Message: "enter an amount greater than zero"}
	}
	if !isFinite(f.ActualRentAmount) || f.ActualRentAmount <= 0 {
		return &FieldError{Field: "actual_rent_amount", Message: "rent amount must be greater than zero"}
	}
	if f.CycleID == 0 {
		return &FieldError{Field: "cycle_id", Message: "select a rent period before submitting"}
	}
	if f.PaymentDate == "" {
		return &FieldError{Field: "payment_date", Message: "payment date is required"}
	}
	if f.RoomID == 0 {
		return &FieldError{Field: "room_id", Message: "tenant has no room allocated"}
	}
	if f.BedID == 0 {
		return &FieldError{Field: "bed_id", Message: "tenant has no bed allocated"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
