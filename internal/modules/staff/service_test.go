package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

type fakeRepo struct {
	byID    map[uuid.UUID]*AppUser
	byPhone map[string]*AppUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[uuid.UUID]*AppUser),
		byPhone: make(map[string]*AppUser),
	}
}

func (r *fakeRepo) CreateUser(_ context.Context, u *AppUser) error {
	if _, ok := r.byPhone[u.PhoneNumber]; ok {
		return apperr.Conflictf("phone number %s already registered", u.PhoneNumber)
	}
	r.byID[u.ID] = u
	r.byPhone[u.PhoneNumber] = u
	return nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*AppUser, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFoundf("staff member %s not found", id)
}

func (r *fakeRepo) GetUserByPhone(_ context.Context, phone string) (*AppUser, error) {
	if u, ok := r.byPhone[phone]; ok {
		return u, nil
	}
	return nil, apperr.NotFoundf("staff member with phone %s not found", phone)
}

func (r *fakeRepo) ListUsers(_ context.Context) ([]*AppUser, error) {
	out := make([]*AppUser, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, u *AppUser) error {
	if _, ok := r.byID[u.ID]; !ok {
		return apperr.NotFoundf("staff member %s not found", u.ID)
	}
	r.byID[u.ID] = u
	r.byPhone[u.PhoneNumber] = u
	return nil
}

func (r *fakeRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return apperr.NotFoundf("staff member %s not found", id)
	}
	delete(r.byID, id)
	delete(r.byPhone, u.PhoneNumber)
	return nil
}

func TestCreateStaffDefaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName:    "Ravi Kumar",
		PhoneNumber: "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "employee", u.Role)
	assert.True(t, u.IsActive)
	// The default PIN is hashed, never stored raw.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(defaultPIN)))
}

func TestCreateStaffValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CreateStaff(context.Background(), CreateStaffRequest{PhoneNumber: "9876543210"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateStaff(context.Background(), CreateStaffRequest{FullName: "Ravi"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateStaffDuplicatePhone(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName: "Ravi Kumar", PhoneNumber: "9876543210",
	})
	require.NoError(t, err)

	_, err = svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName: "Another Ravi", PhoneNumber: "9876543210",
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateStaffPartial(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName: "Ravi Kumar", PhoneNumber: "9876543210", PIN: "9999",
	})
	require.NoError(t, err)
	oldHash := u.PinHash

	inactive := false
	role := "admin"
	updated, err := svc.UpdateStaff(context.Background(), u.ID.String(), UpdateStaffRequest{
		Role:     &role,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "admin", updated.Role)
	assert.False(t, updated.IsActive)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Ravi Kumar", updated.FullName)
	assert.Equal(t, oldHash, updated.PinHash)
}

func TestUpdateStaffChangesPIN(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName: "Ravi Kumar", PhoneNumber: "9876543210", PIN: "1111",
	})
	require.NoError(t, err)

	newPIN := "2222"
	updated, err := svc.UpdateStaff(context.Background(), u.ID.String(), UpdateStaffRequest{PIN: &newPIN})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PinHash), []byte("2222")))
}

func TestDeleteStaffInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.DeleteStaff(context.Background(), "not-a-uuid")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
