package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/models"
	"pg-backend/internal/rentcycle"
)

type RentPaymentRepository struct {
	DB *pgxpool.Pool
}

func NewRentPaymentRepository(db *pgxpool.Pool) *RentPaymentRepository {
	return &RentPaymentRepository{DB: db}
}

func (r *RentPaymentRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	// Database sequence keeps receipt numbers gapless enough and O(1)
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}

	return fmt.Sprintf("RCP-%06d", nextNum), nil
}

// CheckDuplicatePayment checks if a similar payment was made within the last
// 10 seconds. Guards against double-submitted payment forms.
func (r *RentPaymentRepository) CheckDuplicatePayment(ctx context.Context, tenantID int, amountPaid float64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM rent_payments
		WHERE tenant_id = $1
		AND amount_paid = $2
		AND status <> 'VOID'
		AND created_at > NOW() - INTERVAL '10 seconds'
	`
	var count int
	err := r.DB.QueryRow(ctx, query, tenantID, amountPaid).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RentPaymentRepository) Create(ctx context.Context, payment *models.RentPayment) error {
	isDuplicate, err := r.CheckDuplicatePayment(ctx, payment.TenantID, payment.AmountPaid)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if isDuplicate {
		return fmt.Errorf("duplicate payment detected: a payment of ₹%.2f for this tenant was already processed within the last 10 seconds", payment.AmountPaid)
	}

	receiptNumber, err := r.GenerateReceiptNumber(ctx)
	if err != nil {
		return err
	}
	payment.ReferenceID = uuid.NewString()

	query := `
		INSERT INTO rent_payments (reference_id, receipt_number, tenant_id, pg_id, room_id, bed_id,
		                           cycle_id, amount_paid, actual_rent_amount, payment_date,
		                           payment_method, status, remarks, recorded_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	err = r.DB.QueryRow(ctx, query,
		payment.ReferenceID,
		receiptNumber,
		payment.TenantID,
		payment.PGID,
		payment.RoomID,
		payment.BedID,
		payment.CycleID,
		payment.AmountPaid,
		payment.ActualRentAmount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.Status,
		payment.Remarks,
		payment.RecordedByUserID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return err
	}

	payment.ReceiptNumber = receiptNumber
	return nil
}

const paymentColumns = `
	id, reference_id, receipt_number, tenant_id, pg_id, room_id, bed_id, cycle_id,
	amount_paid, actual_rent_amount, payment_date, payment_method, status,
	COALESCE(remarks, ''), COALESCE(recorded_by_user_id, 0), created_at
`

func scanPayment(row interface{ Scan(...any) error }) (*models.RentPayment, error) {
	p := &models.RentPayment{}
	err := row.Scan(
		&p.ID,
		&p.ReferenceID,
		&p.ReceiptNumber,
		&p.TenantID,
		&p.PGID,
		&p.RoomID,
		&p.BedID,
		&p.CycleID,
		&p.AmountPaid,
		&p.ActualRentAmount,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.Status,
		&p.Remarks,
		&p.RecordedByUserID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *RentPaymentRepository) Get(ctx context.Context, id int) (*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE id = $1`
	return scanPayment(r.DB.QueryRow(ctx, query, id))
}

func (r *RentPaymentRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE tenant_id = $1 ORDER BY payment_date DESC`
	rows, err := r.DB.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *RentPaymentRepository) List(ctx context.Context, pgID int) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE pg_id = $1 ORDER BY payment_date DESC`
	rows, err := r.DB.Query(ctx, query, pgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// TotalPaidByCycle sums non-void payments per cycle for one tenant. Feeds gap
// detection.
func (r *RentPaymentRepository) TotalPaidByCycle(ctx context.Context, tenantID int) (map[int]float64, error) {
	query := `
		SELECT cycle_id, SUM(amount_paid)
		FROM rent_payments
		WHERE tenant_id = $1 AND status <> 'VOID'
		GROUP BY cycle_id
	`
	rows, err := r.DB.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]float64)
	for rows.Next() {
		var cycleID int
		var sum float64
		if err := rows.Scan(&cycleID, &sum); err != nil {
			return nil, err
		}
		totals[cycleID] = sum
	}
	return totals, nil
}

func (r *RentPaymentRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE rent_payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %d not found", id)
	}
	return nil
}

func (r *RentPaymentRepository) Void(ctx context.Context, id int) error {
	return r.UpdateStatus(ctx, id, rentcycle.StatusVoid)
}
