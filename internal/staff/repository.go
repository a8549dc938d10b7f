// AngelaMos | 2026
// repository.go

package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bazario/bazario-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetOwned(ctx context.Context, businessID, staffID string) (*Staff, error)
	ListByBusiness(ctx context.Context, businessID string) ([]Staff, error)
	ExistsByBusinessPhone(
		ctx context.Context,
		businessID, phoneNumber, excludeID string,
	) (bool, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, businessID, staffID string) error
	CountOwned(
		ctx context.Context,
		businessID string,
		staffIDs []string,
	) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (id, business_id, name, email, phone_number,
		                   whatsapp_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, s, query,
		s.ID,
		s.BusinessID,
		s.Name,
		s.Email,
		s.PhoneNumber,
		s.WhatsappNumber,
	)
	if err != nil {
		return fmt.Errorf("create staff: %w", err)
	}

	return nil
}

func (r *repository) GetOwned(
	ctx context.Context,
	businessID, staffID string,
) (*Staff, error) {
	query := `
		SELECT id, business_id, name, email, phone_number, whatsapp_number,
		       created_at, updated_at
		FROM staff
		WHERE id = $1 AND business_id = $2`

	var s Staff
	err := r.db.GetContext(ctx, &s, query, staffID, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get staff: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}

	return &s, nil
}

func (r *repository) ListByBusiness(
	ctx context.Context,
	businessID string,
) ([]Staff, error) {
	query := `
		SELECT id, business_id, name, email, phone_number, whatsapp_number,
		       created_at, updated_at
		FROM staff
		WHERE business_id = $1
		ORDER BY created_at DESC`

	staffList := []Staff{}
	err := r.db.SelectContext(ctx, &staffList, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}

	return staffList, nil
}

// ExistsByBusinessPhone reports whether another staff of the same business
// already holds the phone number. excludeID skips one row, used when editing
// a staff member's own number.
func (r *repository) ExistsByBusinessPhone(
	ctx context.Context,
	businessID, phoneNumber, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM staff
			WHERE business_id = $1 AND phone_number = $2 AND id != $3
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query,
		businessID, phoneNumber, excludeID)
	if err != nil {
		return false, fmt.Errorf("check staff phone: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	query := `
		UPDATE staff
		SET name = $3, email = $4, phone_number = $5, whatsapp_number = $6,
		    updated_at = NOW()
		WHERE id = $1 AND business_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.BusinessID,
		s.Name,
		s.Email,
		s.PhoneNumber,
		s.WhatsappNumber,
	)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update staff: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	businessID, staffID string,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM staff WHERE id = $1 AND business_id = $2`,
		staffID, businessID)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete staff: %w", core.ErrNotFound)
	}

	return nil
}

// CountOwned counts how many of the given ids resolve to staff rows owned by
// the business. Duplicate ids in the input collapse to one row, so a count
// short of len(staffIDs) also rejects duplicates.
func (r *repository) CountOwned(
	ctx context.Context,
	businessID string,
	staffIDs []string,
) (int, error) {
	if len(staffIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		`SELECT COUNT(*) FROM staff WHERE business_id = ? AND id IN (?)`,
		businessID, staffIDs)
	if err != nil {
		return 0, fmt.Errorf("count owned staff: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count owned staff: %w", err)
	}

	return count, nil
}
