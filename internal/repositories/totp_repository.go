package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TOTPRepository stores per-user TOTP secrets for admin 2FA.
type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

func (r *TOTPRepository) SaveSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO user_totp (user_id, secret)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, created_at = NOW()
	`, userID, secret)
	return err
}

func (r *TOTPRepository) GetSecret(ctx context.Context, userID int) (string, error) {
	var secret string
	err := r.DB.QueryRow(ctx, `SELECT secret FROM user_totp WHERE user_id = $1`, userID).Scan(&secret)
	if err != nil {
		return "", err
	}
	return secret, nil
}

func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_totp WHERE user_id = $1`, userID)
	return err
}
