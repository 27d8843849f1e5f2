package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/rentcycle"
)

// RentCycleRepository mints and stores billing cycle identities. Cycle rows
// are the only persisted part of gap detection; the gap list itself is
// recomputed on every call.
type RentCycleRepository struct {
	DB *pgxpool.Pool
}

func NewRentCycleRepository(db *pgxpool.Pool) *RentCycleRepository {
	return &RentCycleRepository{DB: db}
}

// Ensure returns the cycle ID for a tenant's billing window, creating the row
// if this window has not been billed before. The (tenant_id, cycle_start)
// pair is unique, so concurrent calls converge on the same ID.
func (r *RentCycleRepository) Ensure(ctx context.Context, tenantID int, start, end time.Time, rentDue float64) (int, error) {
	query := `
		INSERT INTO rent_cycles (tenant_id, cycle_start, cycle_end, rent_due)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, cycle_start)
		DO UPDATE SET cycle_end = EXCLUDED.cycle_end, rent_due = EXCLUDED.rent_due
		RETURNING id
	`
	var id int
	err := r.DB.QueryRow(ctx, query, tenantID, start, end, rentDue).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure rent cycle: %w", err)
	}
	return id, nil
}

// Get returns a single cycle by ID.
func (r *RentCycleRepository) Get(ctx context.Context, id int) (*rentcycle.Cycle, error) {
	c := &rentcycle.Cycle{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, cycle_start, cycle_end, rent_due FROM rent_cycles WHERE id = $1`, id,
	).Scan(&c.ID, &c.Start, &c.End, &c.RentDue)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByTenant returns all generated cycles for a tenant in window order.
func (r *RentCycleRepository) ListByTenant(ctx context.Context, tenantID int) ([]rentcycle.Cycle, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, cycle_start, cycle_end, rent_due FROM rent_cycles WHERE tenant_id = $1 ORDER BY cycle_start`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []rentcycle.Cycle
	for rows.Next() {
		var c rentcycle.Cycle
		if err := rows.Scan(&c.ID, &c.Start, &c.End, &c.RentDue); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, nil
}

// BelongsToTenant reports whether a cycle ID was minted for the given tenant.
// Payment submissions must reference a cycle of their own tenant.
func (r *RentCycleRepository) BelongsToTenant(ctx context.Context, cycleID, tenantID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM rent_cycles WHERE id = $1 AND tenant_id = $2`, cycleID, tenantID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
