// Package pgclient is a typed client for the PG backend API. It mirrors the
// payment screens of the frontend: fetching payment gaps, asking for the next
// billing period and submitting payments. Submissions are validated locally
// with the same rules the server applies, so a bad form never produces a
// network call.
package pgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the given API base URL (e.g. "https://pg.example.com")
// authenticating with the staff bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the single response shape the API uses. Exactly one nesting
// level; Data is unwrapped into the caller's type.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}

	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("malformed response data: %w", err)
		}
	}
	return nil
}

// FetchGaps returns the tenant's unpaid or underpaid billing cycles. Feed the
// result into rentcycle.NewSelector to drive a cycle picker.
func (c *Client) FetchGaps(ctx context.Context, tenantID int) (*models.GapResponse, error) {
	var resp models.GapResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/rent-payments/gaps/%d", tenantID), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// NextDates asks the backend which period the next payment should cover.
// With skipGaps the first unpaid cycle is ignored and a fresh period after
// the last billed one is suggested instead.
func (c *Client) NextDates(ctx context.Context, tenantID int, cycleType string, skipGaps bool) (*rentcycle.SuggestedPeriod, error) {
	q := url.Values{}
	if cycleType != "" {
		q.Set("rentCycleType", cycleType)
	}
	q.Set("skipGaps", strconv.FormatBool(skipGaps))

	var suggestion rentcycle.SuggestedPeriod
	path := fmt.Sprintf("/api/rent-payments/next-dates/%d?%s", tenantID, q.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// SubmitPayment validates the form locally and posts it. Validation failures
// return a *rentcycle.FieldError without touching the network. Room and bed
// may be zero; the server resolves them from the tenant's allocation.
func (c *Client) SubmitPayment(ctx context.Context, req *models.CreateTenantPaymentRequest) (*models.RentPayment, error) {
	if err := validateForm(req); err != nil {
		return nil, err
	}

	var payment models.RentPayment
	if err := c.do(ctx, http.MethodPost, "/api/rent-payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SubmitPaymentForTenant is SubmitPayment with the tenant record in hand:
// room and bed are filled from the tenant's allocation, and the allocation
// rules are enforced locally too, so an unallocated tenant is rejected
// without a network call.
func (c *Client) SubmitPaymentForTenant(ctx context.Context, tenant *models.Tenant, req *models.CreateTenantPaymentRequest) (*models.RentPayment, error) {
	resolved := *req
	if resolved.RoomID == 0 {
		resolved.RoomID = tenant.RoomID
	}
	if resolved.BedID == 0 {
		resolved.BedID = tenant.BedID
	}

	if err := rentcycle.ValidateSubmission(toForm(&resolved)); err != nil {
		return nil, err
	}

	var payment models.RentPayment
	if err := c.do(ctx, http.MethodPost, "/api/rent-payments", &resolved, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func toForm(req *models.CreateTenantPaymentRequest) rentcycle.PaymentForm {
	return rentcycle.PaymentForm{
		TenantID:         req.TenantID,
		PGID:             req.PGID,
		RoomID:           req.RoomID,
		BedID:            req.BedID,
		CycleID:          req.CycleID,
		AmountPaid:       req.AmountPaid,
		ActualRentAmount: req.ActualRentAmount,
		PaymentDate:      req.PaymentDate,
		PaymentMethod:    req.PaymentMethod,
		Remarks:          req.Remarks,
	}
}

// validateForm mirrors the server's field checks, in the same order. Room and
// bed are exempt client-side since the server fills them from the tenant's
// current allocation; SubmitPaymentForTenant enforces them when the tenant
// record is available.
func validateForm(req *models.CreateTenantPaymentRequest) error {
	err := rentcycle.ValidateSubmission(toForm(req))
	if err == nil {
		return nil
	}
	var fieldErr *rentcycle.FieldError
	if errors.As(err, &fieldErr) && (fieldErr.Field == "room_id" || fieldErr.Field == "bed_id") {
		return nil
	}
	return err
}
