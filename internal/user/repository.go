// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bazario/bazario-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*User, error)
	ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error)
	SetOTP(
		ctx context.Context,
		id, otpHash string,
		expiresAt time.Time,
	) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, phone_number, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.PhoneNumber,
		user.Role,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, email, phone_number, role, otp_hash, otp_expires_at,
		       created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByPhone(
	ctx context.Context,
	phoneNumber string,
) (*User, error) {
	query := `
		SELECT id, name, email, phone_number, role, otp_hash, otp_expires_at,
		       created_at, updated_at
		FROM users
		WHERE phone_number = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, phoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by phone: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by phone: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByPhone(
	ctx context.Context,
	phoneNumber string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phoneNumber); err != nil {
		return false, fmt.Errorf("check phone exists: %w", err)
	}

	return exists, nil
}

func (r *repository) SetOTP(
	ctx context.Context,
	id, otpHash string,
	expiresAt time.Time,
) error {
	query := `
		UPDATE users
		SET otp_hash = $2, otp_expires_at = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, otpHash, expiresAt)
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set otp: %w", core.ErrNotFound)
	}

	return nil
}
