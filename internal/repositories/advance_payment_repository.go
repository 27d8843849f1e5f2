package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/models"
)

type AdvancePaymentRepository struct {
	DB *pgxpool.Pool
}

func NewAdvancePaymentRepository(db *pgxpool.Pool) *AdvancePaymentRepository {
	return &AdvancePaymentRepository{DB: db}
}

func (r *AdvancePaymentRepository) Create(ctx context.Context, advance *models.AdvancePayment) error {
	query := `
		INSERT INTO advance_payments (tenant_id, pg_id, amount, payment_date, payment_method, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		advance.TenantID,
		advance.PGID,
		advance.Amount,
		advance.PaymentDate,
		advance.PaymentMethod,
		advance.Status,
		advance.Remarks,
	).Scan(&advance.ID, &advance.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record advance payment: %w", err)
	}
	return nil
}

// GetHeldByTenant returns the tenant's currently held advance, if any.
func (r *AdvancePaymentRepository) GetHeldByTenant(ctx context.Context, tenantID int) (*models.AdvancePayment, error) {
	query := `
		SELECT id, tenant_id, pg_id, amount, payment_date, payment_method, status,
		       refunded_at, COALESCE(remarks, ''), created_at
		FROM advance_payments
		WHERE tenant_id = $1 AND status = 'HELD'
		ORDER BY payment_date DESC
		LIMIT 1
	`
	a := &models.AdvancePayment{}
	err := r.DB.QueryRow(ctx, query, tenantID).Scan(
		&a.ID,
		&a.TenantID,
		&a.PGID,
		&a.Amount,
		&a.PaymentDate,
		&a.PaymentMethod,
		&a.Status,
		&a.RefundedAt,
		&a.Remarks,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AdvancePaymentRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.AdvancePayment, error) {
	query := `
		SELECT id, tenant_id, pg_id, amount, payment_date, payment_method, status,
		       refunded_at, COALESCE(remarks, ''), created_at
		FROM advance_payments
		WHERE tenant_id = $1
		ORDER BY payment_date DESC
	`
	rows, err := r.DB.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []*models.AdvancePayment
	for rows.Next() {
		a := &models.AdvancePayment{}
		err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.PGID,
			&a.Amount,
			&a.PaymentDate,
			&a.PaymentMethod,
			&a.Status,
			&a.RefundedAt,
			&a.Remarks,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, nil
}

func (r *AdvancePaymentRepository) Refund(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE advance_payments SET status = 'REFUNDED', refunded_at = NOW() WHERE id = $1 AND status = 'HELD'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("advance payment %d not found or already refunded", id)
	}
	return nil
}
