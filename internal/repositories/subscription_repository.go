package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/models"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, order *models.SubscriptionOrder) error {
	query := `
		INSERT INTO subscription_orders (user_id, plan_code, amount, currency, razorpay_order_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		order.UserID,
		order.PlanCode,
		order.Amount,
		order.Currency,
		order.RazorpayOrderID,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription order: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.SubscriptionOrder, error) {
	order := &models.SubscriptionOrder{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, plan_code, amount, currency, razorpay_order_id,
		       COALESCE(razorpay_payment_id, ''), status, created_at, updated_at
		FROM subscription_orders
		WHERE razorpay_order_id = $1
	`, razorpayOrderID).Scan(
		&order.ID,
		&order.UserID,
		&order.PlanCode,
		&order.Amount,
		&order.Currency,
		&order.RazorpayOrderID,
		&order.RazorpayPaymentID,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *SubscriptionRepository) MarkPaid(ctx context.Context, razorpayOrderID, razorpayPaymentID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE subscription_orders
		SET status = 'PAID', razorpay_payment_id = $1, updated_at = NOW()
		WHERE razorpay_order_id = $2
	`, razorpayPaymentID, razorpayOrderID)
	return err
}

func (r *SubscriptionRepository) MarkFailed(ctx context.Context, razorpayOrderID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE subscription_orders SET status = 'FAILED', updated_at = NOW() WHERE razorpay_order_id = $1
	`, razorpayOrderID)
	return err
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int) ([]*models.SubscriptionOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, plan_code, amount, currency, razorpay_order_id,
		       COALESCE(razorpay_payment_id, ''), status, created_at, updated_at
		FROM subscription_orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.SubscriptionOrder
	for rows.Next() {
		order := &models.SubscriptionOrder{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.PlanCode,
			&order.Amount,
			&order.Currency,
			&order.RazorpayOrderID,
			&order.RazorpayPaymentID,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
