package ports

import (
	"context"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// AuthService talks to the backend's User/login and User/me endpoints.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	Me(ctx context.Context) (*domain.Profile, error)
	Register(ctx context.Context, req domain.RegisterRequest) error
}
