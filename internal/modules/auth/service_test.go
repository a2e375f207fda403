package auth

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
	"github.com/sweetoven/bakepos-backend/internal/modules/staff"
)

type fakeStaffRepo struct {
	byPhone map[string]*staff.AppUser
}

func (r *fakeStaffRepo) CreateUser(context.Context, *staff.AppUser) error { return nil }

func (r *fakeStaffRepo) GetUserByID(context.Context, uuid.UUID) (*staff.AppUser, error) {
	return nil, apperr.NotFoundf("not implemented")
}

func (r *fakeStaffRepo) GetUserByPhone(_ context.Context, phone string) (*staff.AppUser, error) {
	if u, ok := r.byPhone[phone]; ok {
		return u, nil
	}
	return nil, apperr.NotFoundf("staff member with phone %s not found", phone)
}

func (r *fakeStaffRepo) ListUsers(context.Context) ([]*staff.AppUser, error) { return nil, nil }
func (r *fakeStaffRepo) UpdateUser(context.Context, *staff.AppUser) error    { return nil }
func (r *fakeStaffRepo) DeleteUser(context.Context, uuid.UUID) error         { return nil }

func seedUser(t *testing.T, phone, pin, role string, active bool) *fakeStaffRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeStaffRepo{byPhone: map[string]*staff.AppUser{
		phone: {
			ID:          uuid.New(),
			FullName:    "Ravi Kumar",
			PhoneNumber: phone,
			PinHash:     string(hash),
			Role:        role,
			IsActive:    active,
		},
	}}
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := seedUser(t, "9876543210", "4321", "admin", true)
	svc := NewService(repo)

	result, err := svc.Login(context.Background(), "9876543210", "4321")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Ravi Kumar", result.User.FullName)
	assert.Equal(t, "admin", result.User.Role)

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, result.User.ID, claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotZero(t, claims["exp"])
}

func TestLoginWrongPIN(t *testing.T) {
	repo := seedUser(t, "9876543210", "4321", "employee", true)
	svc := NewService(repo)

	_, err := svc.Login(context.Background(), "9876543210", "0000")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLoginUnknownPhone(t *testing.T) {
	svc := NewService(&fakeStaffRepo{byPhone: map[string]*staff.AppUser{}})

	_, err := svc.Login(context.Background(), "0000000000", "4321")
	require.Error(t, err)
	// Indistinguishable from a wrong PIN.
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.EqualError(t, err, "invalid phone number or PIN")
}

func TestLoginInactiveUser(t *testing.T) {
	repo := seedUser(t, "9876543210", "4321", "employee", false)
	svc := NewService(repo)

	_, err := svc.Login(context.Background(), "9876543210", "4321")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewService(&fakeStaffRepo{byPhone: map[string]*staff.AppUser{}})

	_, err := svc.Login(context.Background(), "", "4321")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Login(context.Background(), "9876543210", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
