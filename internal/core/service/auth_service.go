package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	loginEndpoint    = "User/login"
	meEndpoint       = "User/me"
	registerEndpoint = "user/register"
)

type loginPayload struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// AuthService implements login, profile and self-registration against the backend.
type AuthService struct {
	api      ports.APIClient
	validate *validator.Validate
}

func NewAuthService(api ports.APIClient) *AuthService {
	return &AuthService{api: api, validate: validator.New()}
}

// Login posts the email and the hex SHA-256 of the password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var resp domain.LoginResponse
	if err := s.api.Post(ctx, loginEndpoint, loginPayload{Email: email, PasswordHash: HashPassword(password)}, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login: %w", domain.ErrInvalidToken)
	}
	return &resp, nil
}

func (s *AuthService) Me(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := s.api.Get(ctx, meEndpoint, &p); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("register: %w: %v", domain.ErrInvalidForm, err)
	}
	if err := s.api.Post(ctx, registerEndpoint, req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// HashPassword returns the lowercase hex SHA-256 digest the backend expects.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
