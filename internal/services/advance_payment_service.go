package services

import (
	"context"
	"fmt"

	"pg-backend/internal/cache"
	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
	"pg-backend/internal/repositories"
	"pg-backend/internal/timeutil"
)

type AdvancePaymentService struct {
	advances *repositories.AdvancePaymentRepository
	tenants  *repositories.TenantRepository
}

func NewAdvancePaymentService(advances *repositories.AdvancePaymentRepository, tenants *repositories.TenantRepository) *AdvancePaymentService {
	return &AdvancePaymentService{advances: advances, tenants: tenants}
}

// RecordAdvance stores a security deposit as HELD. Advances never count
// toward rent cycles; they sit outside the gap computation entirely.
func (s *AdvancePaymentService) RecordAdvance(ctx context.Context, req *models.CreateAdvancePaymentRequest) (*models.AdvancePayment, error) {
	if req.Amount <= 0 {
		return nil, &rentcycle.FieldError{Field: "amount", Message: "amount must be greater than zero"}
	}

	if _, err := s.tenants.Get(ctx, req.TenantID); err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	paymentDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.PaymentDate)
	if err != nil {
		return nil, &rentcycle.FieldError{Field: "payment_date", Message: "payment date must be YYYY-MM-DD"}
	}

	advance := &models.AdvancePayment{
		TenantID:      req.TenantID,
		PGID:          req.PGID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Status:        models.AdvanceHeld,
		Remarks:       req.Remarks,
	}
	if err := s.advances.Create(ctx, advance); err != nil {
		return nil, err
	}

	cache.InvalidateTenantCaches(ctx)
	return advance, nil
}

func (s *AdvancePaymentService) ListByTenant(ctx context.Context, tenantID int) ([]*models.AdvancePayment, error) {
	return s.advances.ListByTenant(ctx, tenantID)
}

// Refund releases a held advance, typically at move-out.
func (s *AdvancePaymentService) Refund(ctx context.Context, id int) error {
	if err := s.advances.Refund(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTenantCaches(ctx)
	return nil
}
