package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pg-backend/internal/auth"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
)

// LoginResult is returned from the first login step. When the user has 2FA
// enabled, Token is empty and TempToken carries the short-lived token the
// client exchanges together with the TOTP code.
type LoginResult struct {
	Requires2FA bool         `json:"requires_2fa"`
	TempToken   string       `json:"temp_token,omitempty"`
	Token       string       `json:"token,omitempty"`
	User        *models.User `json:"user,omitempty"`
}

type UserService struct {
	users *repositories.UserRepository
	jwt   *auth.JWTManager
}

func NewUserService(users *repositories.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{users: users, jwt: jwt}
}

// Signup registers the first admin account. Staff accounts are created by an
// admin through CreateUser instead.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials. Users with TOTP enabled get a temp token and
// must complete Verify2FA before receiving a session token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwt.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Requires2FA: true, TempToken: tempToken}, nil
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// CompleteLogin issues the final session token once the TOTP step passed.
func (s *UserService) CompleteLogin(ctx context.Context, userID int) (*models.AuthResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// CreateUser adds a staff account (manager or accountant).
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	switch req.Role {
	case "admin", "manager", "accountant":
	default:
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                req.Name,
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               req.Phone,
		PasswordHash:        hash,
		Role:                req.Role,
		HasAccountantAccess: req.HasAccountantAccess,
		IsActive:            true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		switch req.Role {
		case "admin", "manager", "accountant":
			user.Role = req.Role
		default:
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
	}
	user.HasAccountantAccess = req.HasAccountantAccess
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ToggleActive(ctx context.Context, id int) error {
	return s.users.ToggleActive(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}
