package pgclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
	"pg-backend/pkg/pgclient"
	"pg-backend/pkg/utils"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*pgclient.Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return pgclient.New(srv.URL, "test-token"), &calls
}

func TestFetchGaps(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rent-payments/gaps/42", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		utils.JSON(w, http.StatusOK, models.GapResponse{
			HasGaps: true,
			Gaps: []rentcycle.Gap{{
				CycleID:      7,
				GapStart:     "2024-01-01",
				GapEnd:       "2024-01-31",
				RentDue:      9000,
				TotalPaid:    4000,
				RemainingDue: 5000,
			}},
		})
	})

	resp, err := client.FetchGaps(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, resp.HasGaps)
	require.Len(t, resp.Gaps, 1)
	assert.Equal(t, 7, resp.Gaps[0].CycleID)
	assert.Equal(t, float64(5000), resp.Gaps[0].RemainingDue)
	assert.Equal(t, 1, *calls)
}

func TestFetchGaps_FeedsSelector(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, models.GapResponse{
			HasGaps: true,
			Gaps:    []rentcycle.Gap{{CycleID: 7, RemainingDue: 5000, RentDue: 9000, TotalPaid: 4000}},
		})
	})

	resp, err := client.FetchGaps(context.Background(), 42)
	require.NoError(t, err)

	sel := rentcycle.NewSelector(resp.Gaps)
	require.True(t, sel.ToggleGap(7))
	assert.Equal(t, float64(5000), sel.PrefillAmount(0))
}

func TestNextDates_QueryParams(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rent-payments/next-dates/42", r.URL.Path)
		assert.Equal(t, "WEEKLY", r.URL.Query().Get("rentCycleType"))
		assert.Equal(t, "true", r.URL.Query().Get("skipGaps"))

		utils.JSON(w, http.StatusOK, rentcycle.SuggestedPeriod{
			SuggestedCycleID:   12,
			SuggestedStartDate: "2024-02-01",
			SuggestedEndDate:   "2024-02-07",
		})
	})

	suggestion, err := client.NextDates(context.Background(), 42, "WEEKLY", true)
	require.NoError(t, err)
	assert.Equal(t, 12, suggestion.SuggestedCycleID)
	assert.Equal(t, "2024-02-01", suggestion.SuggestedStartDate)
}

func validPaymentRequest() *models.CreateTenantPaymentRequest {
	return &models.CreateTenantPaymentRequest{
		TenantID:         42,
		PGID:             1,
		CycleID:          7,
		AmountPaid:       5000,
		ActualRentAmount: 9000,
		PaymentDate:      "2024-01-20",
		PaymentMethod:    "UPI",
	}
}

func TestSubmitPayment(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rent-payments", r.URL.Path)

		var req models.CreateTenantPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.CycleID)

		utils.JSON(w, http.StatusCreated, models.RentPayment{
			ID:            1,
			ReceiptNumber: "RCP-000001",
			Status:        rentcycle.StatusPartial,
		})
	})

	payment, err := client.SubmitPayment(context.Background(), validPaymentRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-000001", payment.ReceiptNumber)
	assert.Equal(t, rentcycle.StatusPartial, payment.Status)
	assert.Equal(t, 1, *calls)
}

func TestSubmitPayment_InvalidFormNeverHitsNetwork(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CreateTenantPaymentRequest)
		wantField string
	}{
		{"zero amount", func(r *models.CreateTenantPaymentRequest) { r.AmountPaid = 0 }, "amount_paid"},
		{"negative amount", func(r *models.CreateTenantPaymentRequest) { r.AmountPaid = -100 }, "amount_paid"},
		{"zero rent", func(r *models.CreateTenantPaymentRequest) { r.ActualRentAmount = 0 }, "actual_rent_amount"},
		{"no cycle", func(r *models.CreateTenantPaymentRequest) { r.CycleID = 0 }, "cycle_id"},
		{"no date", func(r *models.CreateTenantPaymentRequest) { r.PaymentDate = "" }, "payment_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("server must not be called for an invalid form")
			})

			req := validPaymentRequest()
			tt.mutate(req)

			_, err := client.SubmitPayment(context.Background(), req)
			require.Error(t, err)

			var fieldErr *rentcycle.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
			assert.Equal(t, 0, *calls)
		})
	}
}

func TestSubmitPayment_ZeroRoomAndBedAllowed(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusCreated, models.RentPayment{ID: 1, Status: rentcycle.StatusPaid})
	})

	req := validPaymentRequest()
	req.RoomID = 0
	req.BedID = 0

	_, err := client.SubmitPayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestSubmitPaymentForTenant_FillsAllocation(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTenantPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.RoomID)
		assert.Equal(t, 5, req.BedID)

		utils.JSON(w, http.StatusCreated, models.RentPayment{ID: 1, Status: rentcycle.StatusPartial})
	})

	tenant := &models.Tenant{ID: 42, RoomID: 3, BedID: 5}
	req := validPaymentRequest()

	payment, err := client.SubmitPaymentForTenant(context.Background(), tenant, req)
	require.NoError(t, err)
	assert.Equal(t, rentcycle.StatusPartial, payment.Status)
	assert.Equal(t, 1, *calls)
	// The caller's request is untouched
	assert.Equal(t, 0, req.RoomID)
}

func TestSubmitPaymentForTenant_UnallocatedRejectedLocally(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called for an unallocated tenant")
	})

	tenant := &models.Tenant{ID: 42}
	_, err := client.SubmitPaymentForTenant(context.Background(), tenant, validPaymentRequest())
	require.Error(t, err)

	var fieldErr *rentcycle.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "room_id", fieldErr.Field)
	assert.Equal(t, 0, *calls)
}

func TestAPIErrorUnwrapped(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Not found")
	})

	_, err := client.FetchGaps(context.Background(), 99)
	require.Error(t, err)

	var apiErr *pgclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not found", apiErr.Message)
}
