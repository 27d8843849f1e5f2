package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pg-backend/internal/cache"
	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
	"pg-backend/internal/repositories"
	"pg-backend/internal/timeutil"
)

type TenantService struct {
	tenants  *repositories.TenantRepository
	rooms    *repositories.RoomRepository
	advances *repositories.AdvancePaymentRepository
	rents    *RentPaymentService
}

func NewTenantService(
	tenants *repositories.TenantRepository,
	rooms *repositories.RoomRepository,
	advances *repositories.AdvancePaymentRepository,
	rents *RentPaymentService,
) *TenantService {
	return &TenantService{
		tenants:  tenants,
		rooms:    rooms,
		advances: advances,
		rents:    rents,
	}
}

// CreateTenant registers a tenant and, when a bed is given, claims it
// atomically enough for a single admin: the bed claim guards against
// double-booking at the SQL level.
func (s *TenantService) CreateTenant(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	if req.Name == "" {
		return nil, &rentcycle.FieldError{Field: "name", Message: "name is required"}
	}
	if req.Phone == "" {
		return nil, &rentcycle.FieldError{Field: "phone", Message: "phone is required"}
	}
	if req.MonthlyRent <= 0 {
		return nil, &rentcycle.FieldError{Field: "monthly_rent", Message: "monthly rent must be greater than zero"}
	}

	cycleType := req.RentCycleType
	if cycleType == "" {
		cycleType = rentcycle.CycleMonthly
	}
	if cycleType != rentcycle.CycleMonthly && cycleType != rentcycle.CycleWeekly {
		return nil, &rentcycle.FieldError{Field: "rent_cycle_type", Message: "rent cycle type must be MONTHLY or WEEKLY"}
	}

	moveIn, err := timeutil.ParseInIST(timeutil.DateLayout, req.MoveInDate)
	if err != nil {
		return nil, &rentcycle.FieldError{Field: "move_in_date", Message: "move-in date must be YYYY-MM-DD"}
	}

	var roomID int
	if req.BedID != 0 {
		bed, err := s.rooms.GetBed(ctx, req.BedID)
		if err != nil {
			return nil, fmt.Errorf("bed not found: %w", err)
		}
		if bed.TenantID != 0 {
			return nil, fmt.Errorf("bed %d is already occupied", req.BedID)
		}
		roomID = bed.RoomID
	}

	tenant := &models.Tenant{
		PGID:          req.PGID,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		IDProof:       req.IDProof,
		RoomID:        roomID,
		BedID:         req.BedID,
		MonthlyRent:   req.MonthlyRent,
		RentCycleType: cycleType,
		MoveInDate:    moveIn,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	if req.BedID != 0 {
		if err := s.rooms.AssignBed(ctx, req.BedID, tenant.ID); err != nil {
			return nil, err
		}
	}

	cache.InvalidateTenantCaches(ctx)
	cache.InvalidateRoomCaches(ctx)
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id int) (*models.Tenant, error) {
	return s.tenants.Get(ctx, id)
}

func (s *TenantService) ListTenants(ctx context.Context, pgID int) ([]*models.Tenant, error) {
	return s.tenants.List(ctx, pgID)
}

func (s *TenantService) SearchByPhone(ctx context.Context, pgID int, phone string) ([]*models.Tenant, error) {
	return s.tenants.SearchByPhone(ctx, pgID, phone)
}

func (s *TenantService) UpdateTenant(ctx context.Context, id int, req *models.UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Phone != "" {
		tenant.Phone = req.Phone
	}
	if req.Email != "" {
		tenant.Email = req.Email
	}
	if req.IDProof != "" {
		tenant.IDProof = req.IDProof
	}
	if req.MonthlyRent > 0 {
		tenant.MonthlyRent = req.MonthlyRent
	}
	if req.RentCycleType != "" {
		if req.RentCycleType != rentcycle.CycleMonthly && req.RentCycleType != rentcycle.CycleWeekly {
			return nil, &rentcycle.FieldError{Field: "rent_cycle_type", Message: "rent cycle type must be MONTHLY or WEEKLY"}
		}
		tenant.RentCycleType = req.RentCycleType
	}

	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}

	cache.InvalidateTenantCaches(ctx)
	return tenant, nil
}

// ReassignBed moves a tenant to another bed, releasing the old one.
func (s *TenantService) ReassignBed(ctx context.Context, tenantID, bedID int) (*models.Tenant, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	bed, err := s.rooms.GetBed(ctx, bedID)
	if err != nil {
		return nil, fmt.Errorf("bed not found: %w", err)
	}

	if err := s.rooms.AssignBed(ctx, bedID, tenantID); err != nil {
		return nil, err
	}
	if tenant.BedID != 0 {
		if err := s.rooms.ReleaseBed(ctx, tenant.BedID); err != nil {
			return nil, err
		}
	}
	if err := s.tenants.SetAllocation(ctx, tenantID, bed.RoomID, bedID); err != nil {
		return nil, err
	}

	tenant.RoomID = bed.RoomID
	tenant.BedID = bedID

	cache.InvalidateTenantCaches(ctx)
	cache.InvalidateRoomCaches(ctx)
	return tenant, nil
}

// MoveOut deactivates the tenant and frees the bed. History is kept.
func (s *TenantService) MoveOut(ctx context.Context, tenantID int) error {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("tenant not found: %w", err)
	}

	if tenant.BedID != 0 {
		if err := s.rooms.ReleaseBed(ctx, tenant.BedID); err != nil {
			return err
		}
	}
	if err := s.tenants.SetAllocation(ctx, tenantID, 0, 0); err != nil {
		return err
	}
	if err := s.tenants.Deactivate(ctx, tenantID); err != nil {
		return err
	}

	cache.InvalidateTenantCaches(ctx)
	cache.InvalidateRoomCaches(ctx)
	return nil
}

// Summary builds the dashboard view for one tenant: rent badges, due
// amounts split by partial vs untouched cycles, and the unpaid months.
func (s *TenantService) Summary(ctx context.Context, tenantID int) (*models.TenantSummary, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}

	gapResp, err := s.rents.DetectGaps(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := &models.TenantSummary{
		Tenant:       tenant,
		IsRentPaid:   !gapResp.HasGaps,
		UnpaidMonths: []string{},
	}

	for _, gap := range gapResp.Gaps {
		summary.RentDueAmount += gap.RemainingDue
		if gap.TotalPaid > 0 {
			summary.IsRentPartial = true
			summary.PartialDueAmount += gap.RemainingDue
		} else {
			summary.PendingDueAmount += gap.RemainingDue
		}
		summary.UnpaidMonths = append(summary.UnpaidMonths, monthLabel(gap.GapStart))
	}

	_, err = s.advances.GetHeldByTenant(ctx, tenantID)
	switch {
	case err == nil:
		summary.IsAdvancePaid = true
	case errors.Is(err, pgx.ErrNoRows):
		// no advance on record
	default:
		return nil, err
	}

	return summary, nil
}

// ListSummaries builds summaries for every active tenant of a PG.
func (s *TenantService) ListSummaries(ctx context.Context, pgID int) ([]*models.TenantSummary, error) {
	tenants, err := s.tenants.List(ctx, pgID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.TenantSummary, 0, len(tenants))
	for _, t := range tenants {
		summary, err := s.Summary(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// monthLabel turns a cycle start date into the "January 2024" form the
// tenant cards show.
func monthLabel(start string) string {
	t, err := timeutil.ParseInIST(timeutil.DateLayout, start)
	if err != nil {
		return start
	}
	return t.Format("January 2006")
}
