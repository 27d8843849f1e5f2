package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/models"
)

type TenantRepository struct {
	DB *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{DB: db}
}

const tenantColumns = `
	id, pg_id, name, phone, COALESCE(email, ''), COALESCE(id_proof, ''),
	COALESCE(room_id, 0), COALESCE(bed_id, 0), monthly_rent, rent_cycle_type,
	move_in_date, is_active, created_at, updated_at
`

func scanTenant(row interface{ Scan(...any) error }) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := row.Scan(
		&t.ID,
		&t.PGID,
		&t.Name,
		&t.Phone,
		&t.Email,
		&t.IDProof,
		&t.RoomID,
		&t.BedID,
		&t.MonthlyRent,
		&t.RentCycleType,
		&t.MoveInDate,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (pg_id, name, phone, email, id_proof, room_id, bed_id,
		                     monthly_rent, rent_cycle_type, move_in_date, is_active)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), NULLIF($7, 0), $8, $9, $10, true)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		tenant.PGID,
		tenant.Name,
		tenant.Phone,
		tenant.Email,
		tenant.IDProof,
		tenant.RoomID,
		tenant.BedID,
		tenant.MonthlyRent,
		tenant.RentCycleType,
		tenant.MoveInDate,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	tenant.IsActive = true
	return nil
}

func (r *TenantRepository) Get(ctx context.Context, id int) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.DB.QueryRow(ctx, query, id))
}

func (r *TenantRepository) List(ctx context.Context, pgID int) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE pg_id = $1 AND is_active ORDER BY name`
	rows, err := r.DB.Query(ctx, query, pgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func (r *TenantRepository) SearchByPhone(ctx context.Context, pgID int, phone string) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE pg_id = $1 AND phone LIKE $2 ORDER BY name`
	rows, err := r.DB.Query(ctx, query, pgID, "%"+phone+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, phone = $2, email = $3, id_proof = $4, monthly_rent = $5,
		    rent_cycle_type = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.DB.Exec(ctx, query,
		tenant.Name,
		tenant.Phone,
		tenant.Email,
		tenant.IDProof,
		tenant.MonthlyRent,
		tenant.RentCycleType,
		tenant.ID,
	)
	return err
}

// SetAllocation updates the tenant's room/bed pointers. Zero clears them.
func (r *TenantRepository) SetAllocation(ctx context.Context, tenantID, roomID, bedID int) error {
	query := `
		UPDATE tenants
		SET room_id = NULLIF($1, 0), bed_id = NULLIF($2, 0), updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.DB.Exec(ctx, query, roomID, bedID, tenantID)
	return err
}

// Deactivate marks a tenant as moved out. Payment history stays intact.
func (r *TenantRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE tenants SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}
