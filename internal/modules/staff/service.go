package staff

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// defaultPIN is assigned when a new staff member is created without one;
// they are expected to change it on first login.
const defaultPIN = "1234"

// Service defines staff management business logic.
type Service interface {
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*AppUser, error)
	GetStaff(ctx context.Context, id string) (*AppUser, error)
	ListStaff(ctx context.Context) ([]*AppUser, error)
	UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest) (*AppUser, error)
	DeleteStaff(ctx context.Context, id string) error
}

// CreateStaffRequest holds data for onboarding a staff member.
type CreateStaffRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role,omitempty"`
	PIN         string `json:"pin,omitempty"`
}

// UpdateStaffRequest carries partial updates; nil fields are left unchanged.
type UpdateStaffRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Role        *string `json:"role,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	PIN         *string `json:"pin,omitempty"`
}

type service struct {
	repo Repository
}

// NewService creates a new staff service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*AppUser, error) {
	if req.FullName == "" {
		return nil, apperr.Validationf("full name is required")
	}
	if req.PhoneNumber == "" {
		return nil, apperr.Validationf("phone number is required")
	}
	role := req.Role
	if role == "" {
		role = "employee"
	}
	pin := req.PIN
	if pin == "" {
		pin = defaultPIN
	}
	hash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}
	u := &AppUser{
		ID:          uuid.New(),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		PinHash:     hash,
		Role:        role,
		IsActive:    true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetStaff(ctx context.Context, id string) (*AppUser, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid staff id %q", id)
	}
	return s.repo.GetUserByID(ctx, uid)
}

func (s *service) ListStaff(ctx context.Context) ([]*AppUser, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest) (*AppUser, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid staff id %q", id)
	}
	u, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.PIN != nil && *req.PIN != "" {
		hash, err := hashPIN(*req.PIN)
		if err != nil {
			return nil, err
		}
		u.PinHash = hash
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteStaff(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validationf("invalid staff id %q", id)
	}
	return s.repo.DeleteUser(ctx, uid)
}

func hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Dependency(err, "hash pin")
	}
	return string(hash), nil
}
