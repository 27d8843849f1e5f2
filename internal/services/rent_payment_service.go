package services

import (
	"context"
	"fmt"
	"time"

	"pg-backend/internal/cache"
	"pg-backend/internal/metrics"
	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
	"pg-backend/internal/timeutil"
)

// TenantStore is the slice of TenantRepository the payment flow needs.
type TenantStore interface {
	Get(ctx context.Context, id int) (*models.Tenant, error)
}

// CycleStore mints and checks billing cycle identities.
type CycleStore interface {
	Ensure(ctx context.Context, tenantID int, start, end time.Time, rentDue float64) (int, error)
	BelongsToTenant(ctx context.Context, cycleID, tenantID int) (bool, error)
}

// PaymentStore persists rent payments and aggregates them per cycle.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.RentPayment) error
	Get(ctx context.Context, id int) (*models.RentPayment, error)
	ListByTenant(ctx context.Context, tenantID int) ([]*models.RentPayment, error)
	List(ctx context.Context, pgID int) ([]*models.RentPayment, error)
	TotalPaidByCycle(ctx context.Context, tenantID int) (map[int]float64, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Void(ctx context.Context, id int) error
}

type RentPaymentService struct {
	tenants  TenantStore
	cycles   CycleStore
	payments PaymentStore
}

func NewRentPaymentService(tenants TenantStore, cycles CycleStore, payments PaymentStore) *RentPaymentService {
	return &RentPaymentService{
		tenants:  tenants,
		cycles:   cycles,
		payments: payments,
	}
}

// generateCycles walks the tenant's billing windows from move-in to now and
// makes sure each one has a minted cycle ID.
func (s *RentPaymentService) generateCycles(ctx context.Context, tenant *models.Tenant, cycleType string) ([]rentcycle.Cycle, error) {
	if cycleType == "" {
		cycleType = tenant.RentCycleType
	}

	now := timeutil.Now()
	if now.Before(tenant.MoveInDate) {
		now = tenant.MoveInDate
	}

	windows := rentcycle.Windows(tenant.MoveInDate, now, cycleType)
	cycles := make([]rentcycle.Cycle, 0, len(windows))
	for _, w := range windows {
		id, err := s.cycles.Ensure(ctx, tenant.ID, w.Start, w.End, tenant.MonthlyRent)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, rentcycle.Cycle{ID: id, Start: w.Start, End: w.End, RentDue: tenant.MonthlyRent})
	}
	return cycles, nil
}

// DetectGaps recomputes the tenant's unpaid or underpaid billing cycles.
// Read-only apart from cycle ID minting.
func (s *RentPaymentService) DetectGaps(ctx context.Context, tenantID int) (*models.GapResponse, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	cycles, err := s.generateCycles(ctx, tenant, "")
	if err != nil {
		return nil, err
	}

	paid, err := s.payments.TotalPaidByCycle(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	metrics.GapDetectionRuns.Inc()

	gaps := rentcycle.DetectGaps(cycles, paid)
	if gaps == nil {
		gaps = []rentcycle.Gap{}
	}
	return &models.GapResponse{HasGaps: len(gaps) > 0, Gaps: gaps}, nil
}

// NextDates suggests the period a new payment should cover: the first
// uncovered cycle, or with skipGaps (and when nothing is uncovered) the
// window after the last billed one.
func (s *RentPaymentService) NextDates(ctx context.Context, tenantID int, cycleType string, skipGaps bool) (*rentcycle.SuggestedPeriod, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	if cycleType == "" {
		cycleType = tenant.RentCycleType
	}

	cycles, err := s.generateCycles(ctx, tenant, cycleType)
	if err != nil {
		return nil, err
	}

	if !skipGaps {
		paid, err := s.payments.TotalPaidByCycle(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		for _, c := range cycles {
			if paid[c.ID] < c.RentDue {
				return &rentcycle.SuggestedPeriod{
					SuggestedCycleID:   c.ID,
					SuggestedStartDate: c.Start.Format(timeutil.DateLayout),
					SuggestedEndDate:   c.End.Format(timeutil.DateLayout),
				}, nil
			}
		}
	}

	// The window after the last generated one, derived from the move-in
	// anchor so it matches what the generator will mint for the same start.
	next := rentcycle.NthWindow(tenant.MoveInDate, len(cycles), cycleType)
	id, err := s.cycles.Ensure(ctx, tenant.ID, next.Start, next.End, tenant.MonthlyRent)
	if err != nil {
		return nil, err
	}

	return &rentcycle.SuggestedPeriod{
		SuggestedCycleID:   id,
		SuggestedStartDate: next.Start.Format(timeutil.DateLayout),
		SuggestedEndDate:   next.End.Format(timeutil.DateLayout),
	}, nil
}

// CreatePayment validates the submission, derives the status from the amount
// comparison and records the payment. Validation failures abort before any
// write.
func (s *RentPaymentService) CreatePayment(ctx context.Context, req *models.CreateTenantPaymentRequest, recordedByUserID int) (*models.RentPayment, error) {
	tenant, err := s.tenants.Get(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	// Room and bed come from the tenant's current allocation unless the
	// caller pinned them explicitly.
	roomID := req.RoomID
	if roomID == 0 {
		roomID = tenant.RoomID
	}
	bedID := req.BedID
	if bedID == 0 {
		bedID = tenant.BedID
	}

	form := rentcycle.PaymentForm{
		TenantID:         req.TenantID,
		PGID:             req.PGID,
		RoomID:           roomID,
		BedID:            bedID,
		CycleID:          req.CycleID,
		AmountPaid:       req.AmountPaid,
		ActualRentAmount: req.ActualRentAmount,
		PaymentDate:      req.PaymentDate,
		PaymentMethod:    req.PaymentMethod,
		Remarks:          req.Remarks,
	}
	if err := rentcycle.ValidateSubmission(form); err != nil {
		return nil, err
	}

	paymentDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.PaymentDate)
	if err != nil {
		return nil, &rentcycle.FieldError{Field: "payment_date", Message: "payment date must be YYYY-MM-DD"}
	}

	ok, err := s.cycles.BelongsToTenant(ctx, req.CycleID, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &rentcycle.FieldError{Field: "cycle_id", Message: "rent cycle does not belong to this tenant"}
	}

	payment := &models.RentPayment{
		TenantID:         req.TenantID,
		PGID:             req.PGID,
		RoomID:           roomID,
		BedID:            bedID,
		CycleID:          req.CycleID,
		AmountPaid:       req.AmountPaid,
		ActualRentAmount: req.ActualRentAmount,
		PaymentDate:      paymentDate,
		PaymentMethod:    req.PaymentMethod,
		Status:           rentcycle.ComputeStatus(req.AmountPaid, req.ActualRentAmount),
		Remarks:          req.Remarks,
		RecordedByUserID: recordedByUserID,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.RentPaymentsCreated.WithLabelValues(payment.Status).Inc()

	// A new payment changes due amounts and badges; cached tenant views are stale
	cache.InvalidatePaymentCaches(ctx, payment.TenantID)

	return payment, nil
}

func (s *RentPaymentService) GetPayment(ctx context.Context, id int) (*models.RentPayment, error) {
	return s.payments.Get(ctx, id)
}

func (s *RentPaymentService) ListPaymentsByTenant(ctx context.Context, tenantID int) ([]*models.RentPayment, error) {
	return s.payments.ListByTenant(ctx, tenantID)
}

func (s *RentPaymentService) ListPayments(ctx context.Context, pgID int) ([]*models.RentPayment, error) {
	return s.payments.List(ctx, pgID)
}

// UpdateStatus overrides a payment's status. Only the three derived states
// are accepted; voiding goes through VoidPayment.
func (s *RentPaymentService) UpdateStatus(ctx context.Context, id int, status string) error {
	switch status {
	case rentcycle.StatusPaid, rentcycle.StatusPartial, rentcycle.StatusPending:
	default:
		return fmt.Errorf("invalid payment status %q", status)
	}
	// Fetch first so the tenant's caches are always invalidated after the
	// write; a post-update lookup failure would leave stale summaries.
	payment, err := s.payments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	cache.InvalidatePaymentCaches(ctx, payment.TenantID)
	return nil
}

// VoidPayment excludes a payment from all gap and due computations.
func (s *RentPaymentService) VoidPayment(ctx context.Context, id int) error {
	payment, err := s.payments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.Void(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePaymentCaches(ctx, payment.TenantID)
	return nil
}
