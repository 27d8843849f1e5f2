package rentcycle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-backend/internal/rentcycle"
)

func validForm() rentcycle.PaymentForm {
	return rentcycle.PaymentForm{
		TenantID:         1,
		PGID:             1,
		RoomID:           3,
		BedID:            5,
		CycleID:          7,
		AmountPaid:       4000,
		ActualRentAmount: 9000,
		PaymentDate:      "2024-01-20",
		PaymentMethod:    "UPI",
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*rentcycle.PaymentForm)
		wantField string
	}{
		{"valid form", func(f *rentcycle.PaymentForm) {}, ""},
		{"zero amount", func(f *rentcycle.PaymentForm) { f.AmountPaid = 0 }, "amount_paid"},
		{"negative amount", func(f *rentcycle.PaymentForm) { f.AmountPaid = -50 }, "amount_paid"},
		{"NaN amount", func(f *rentcycle.PaymentForm) { f.AmountPaid = math.NaN() }, "amount_paid"},
		{"infinite amount", func(f *rentcycle.PaymentForm) { f.AmountPaid = math.Inf(1) }, "amount_paid"},
		{"zero rent", func(f *rentcycle.PaymentForm) { f.ActualRentAmount = 0 }, "actual_rent_amount"},
		{"NaN rent", func(f *rentcycle.PaymentForm) { f.ActualRentAmount = math.NaN() }, "actual_rent_amount"},
		{"missing cycle", func(f *rentcycle.PaymentForm) { f.CycleID = 0 }, "cycle_id"},
		{"missing payment date", func(f *rentcycle.PaymentForm) { f.PaymentDate = "" }, "payment_date"},
		{"no room allocated", func(f *rentcycle.PaymentForm) { f.RoomID = 0 }, "room_id"},
		{"no bed allocated", func(f *rentcycle.PaymentForm) { f.BedID = 0 }, "bed_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := rentcycle.ValidateSubmission(f)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var fieldErr *rentcycle.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}
