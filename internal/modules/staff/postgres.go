package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

const uniqueViolation = "23505"

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateUser(ctx context.Context, u *AppUser) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_users (id, full_name, phone_number, pin_hash, role, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.FullName, u.PhoneNumber, u.PinHash, u.Role, u.IsActive)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperr.Conflictf("phone number %s is already registered", u.PhoneNumber)
	}
	if err != nil {
		return apperr.Dependency(err, "insert staff user")
	}
	return nil
}

func (r *postgresRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*AppUser, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, full_name, phone_number, pin_hash, role, is_active, created_at, updated_at
		FROM app_users WHERE id=$1`, id))
}

func (r *postgresRepo) GetUserByPhone(ctx context.Context, phone string) (*AppUser, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, full_name, phone_number, pin_hash, role, is_active, created_at, updated_at
		FROM app_users WHERE phone_number=$1`, phone))
}

func (r *postgresRepo) ListUsers(ctx context.Context) ([]*AppUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, phone_number, pin_hash, role, is_active, created_at, updated_at
		FROM app_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Dependency(err, "list staff")
	}
	defer rows.Close()
	var users []*AppUser
	for rows.Next() {
		u := &AppUser{}
		if err := rows.Scan(&u.ID, &u.FullName, &u.PhoneNumber, &u.PinHash,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, apperr.Dependency(err, "scan staff user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepo) UpdateUser(ctx context.Context, u *AppUser) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE app_users
		SET full_name=$1, phone_number=$2, pin_hash=$3, role=$4, is_active=$5, updated_at=NOW()
		WHERE id=$6`,
		u.FullName, u.PhoneNumber, u.PinHash, u.Role, u.IsActive, u.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperr.Conflictf("phone number %s is already registered", u.PhoneNumber)
	}
	if err != nil {
		return apperr.Dependency(err, "update staff user")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFoundf("staff member %s not found", u.ID)
	}
	return nil
}

func (r *postgresRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM app_users WHERE id=$1`, id)
	if err != nil {
		return apperr.Dependency(err, "delete staff user")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFoundf("staff member %s not found", id)
	}
	return nil
}

func (r *postgresRepo) scanUser(row *sql.Row) (*AppUser, error) {
	u := &AppUser{}
	err := row.Scan(&u.ID, &u.FullName, &u.PhoneNumber, &u.PinHash,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("staff member not found")
	}
	if err != nil {
		return nil, apperr.Dependency(err, "fetch staff user")
	}
	return u, nil
}
