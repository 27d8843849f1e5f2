package services

import (
	"context"
	"errors"

	"github.com/pquerna/otp/totp"

	"pg-backend/internal/repositories"
)

type TOTPService struct {
	secrets *repositories.TOTPRepository
	users   *repositories.UserRepository
}

func NewTOTPService(secrets *repositories.TOTPRepository, users *repositories.UserRepository) *TOTPService {
	return &TOTPService{secrets: secrets, users: users}
}

// Setup generates a fresh TOTP secret for the user and returns the
// otpauth:// provisioning URL for the authenticator app. 2FA stays disabled
// until the user confirms a code through Enable.
func (s *TOTPService) Setup(ctx context.Context, userID int) (string, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "PG Manager",
		AccountName: user.Email,
	})
	if err != nil {
		return "", err
	}

	if err := s.secrets.SaveSecret(ctx, userID, key.Secret()); err != nil {
		return "", err
	}
	return key.URL(), nil
}

// Enable turns 2FA on after verifying the user can produce a valid code.
func (s *TOTPService) Enable(ctx context.Context, userID int, code string) error {
	if err := s.verify(ctx, userID, code); err != nil {
		return err
	}
	return s.users.SetTOTPEnabled(ctx, userID, true)
}

// Verify checks a code during the second login step.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	return s.verify(ctx, userID, code)
}

// Disable removes the secret and turns 2FA off. Requires a valid code so a
// stolen session cannot silently weaken the account.
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	if err := s.verify(ctx, userID, code); err != nil {
		return err
	}
	if err := s.users.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}
	return s.secrets.Delete(ctx, userID)
}

func (s *TOTPService) verify(ctx context.Context, userID int, code string) error {
	secret, err := s.secrets.GetSecret(ctx, userID)
	if err != nil {
		return errors.New("2FA is not set up for this account")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	return nil
}
