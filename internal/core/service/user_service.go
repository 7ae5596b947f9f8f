package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	userEndpoint        = "user"
	userAccountEndpoint = "user/account"
	roleEndpoint        = "roles"
)

// UserService manages the accounts of the caller's organisation.
type UserService struct {
	api ports.APIClient
}

func NewUserService(api ports.APIClient) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.api.Get(ctx, userAccountEndpoint, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *UserService) Create(ctx context.Context, user domain.User) error {
	if err := s.api.Post(ctx, userEndpoint, user, nil); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserService) Update(ctx context.Context, user domain.User) error {
	if err := s.api.Put(ctx, userEndpoint, user, nil); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, userEndpoint+"/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

type RoleService struct {
	api ports.APIClient
}

func NewRoleService(api ports.APIClient) *RoleService {
	return &RoleService{api: api}
}

// List returns the roles of clinicID, or every role when clinicID is nil or zero.
func (s *RoleService) List(ctx context.Context, clinicID *int) ([]domain.Role, error) {
	endpoint := roleEndpoint
	if clinicID != nil && *clinicID != 0 {
		endpoint += "?clinicId=" + strconv.Itoa(*clinicID)
	}
	var out []domain.Role
	if err := s.api.Get(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}

func (s *RoleService) Get(ctx context.Context, id int) (*domain.Role, error) {
	var out domain.Role
	if err := s.api.Get(ctx, roleEndpoint+"/"+strconv.Itoa(id), &out); err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &out, nil
}

func (s *RoleService) Create(ctx context.Context, role domain.Role) (*domain.Role, error) {
	var out domain.Role
	if err := s.api.Post(ctx, roleEndpoint, role, &out); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return &out, nil
}

func (s *RoleService) Update(ctx context.Context, role domain.Role) error {
	if role.ID == nil {
		return fmt.Errorf("update role: %w", domain.ErrNotFound)
	}
	if err := s.api.Put(ctx, roleEndpoint+"/"+strconv.Itoa(*role.ID), role, nil); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *RoleService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, roleEndpoint+"/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
