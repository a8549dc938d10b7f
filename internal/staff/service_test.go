// AngelaMos | 2026
// service_test.go

package staff

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/user"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(sqlx.NewDb(db, "sqlmock"))), mock
}

func staffColumns() []string {
	return []string{
		"id", "business_id", "name", "email", "phone_number",
		"whatsapp_number", "created_at", "updated_at",
	}
}

func TestService_AddStaff(t *testing.T) {
	ctx := context.Background()

	req := AddStaffRequest{
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		PhoneNumber: "9123456780",
	}

	t.Run("forbidden for non-business callers", func(t *testing.T) {
		svc, mock := newTestService(t)

		_, err := svc.AddStaff(ctx, "u-1", user.RoleIndividual, req)

		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict on duplicate phone within business", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("biz-1", "9123456780", "").
			WillReturnRows(
				sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := svc.AddStaff(ctx, "biz-1", user.RoleBusiness, req)

		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	t.Run("creates when the phone is free", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("biz-1", "9123456780", "").
			WillReturnRows(
				sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO staff`).
			WithArgs(sqlmock.AnyArg(), "biz-1", "Ravi Kumar",
				"ravi@example.com", "9123456780", nil).
			WillReturnRows(sqlmock.NewRows(
				[]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		member, err := svc.AddStaff(ctx, "biz-1", user.RoleBusiness, req)

		require.NoError(t, err)
		assert.Equal(t, "biz-1", member.BusinessID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_EditStaff(t *testing.T) {
	ctx := context.Background()

	ownedRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(staffColumns()).AddRow(
			"staff-1", "biz-1", "Ravi Kumar", "ravi@example.com",
			"9123456780", nil, time.Now(), time.Now())
	}

	t.Run("not found when staff belongs elsewhere", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT id, business_id`).
			WithArgs("staff-1", "biz-2").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.EditStaff(ctx, "biz-2", user.RoleBusiness,
			"staff-1", EditStaffRequest{})

		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("conflict when another staff holds the new phone",
		func(t *testing.T) {
			svc, mock := newTestService(t)

			mock.ExpectQuery(`SELECT id, business_id`).
				WithArgs("staff-1", "biz-1").
				WillReturnRows(ownedRow())

			newPhone := "9999999999"
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("biz-1", newPhone, "staff-1").
				WillReturnRows(
					sqlmock.NewRows([]string{"exists"}).AddRow(true))

			_, err := svc.EditStaff(ctx, "biz-1", user.RoleBusiness,
				"staff-1", EditStaffRequest{PhoneNumber: &newPhone})

			assert.ErrorIs(t, err, core.ErrDuplicateKey)
		})

	t.Run("applies only the supplied fields", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT id, business_id`).
			WithArgs("staff-1", "biz-1").
			WillReturnRows(ownedRow())

		newName := "Ravi K"
		mock.ExpectExec(`UPDATE staff`).
			WithArgs("staff-1", "biz-1", newName, "ravi@example.com",
				"9123456780", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		member, err := svc.EditStaff(ctx, "biz-1", user.RoleBusiness,
			"staff-1", EditStaffRequest{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, newName, member.Name)
		assert.Equal(t, "9123456780", member.PhoneNumber,
			"untouched fields keep their stored values")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_DeleteStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("forbidden for non-business callers", func(t *testing.T) {
		svc, _ := newTestService(t)

		err := svc.DeleteStaff(ctx, "u-1", user.RoleIndividual, "staff-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("not found when unowned", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectExec(`DELETE FROM staff`).
			WithArgs("staff-1", "biz-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.DeleteStaff(ctx, "biz-2", user.RoleBusiness, "staff-1")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_ValidateOwnedSet(t *testing.T) {
	ctx := context.Background()

	t.Run("short count rejects the set", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := svc.ValidateOwnedSet(ctx, "biz-1",
			[]string{"staff-1", "staff-of-biz-2"})

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty set is trivially valid", func(t *testing.T) {
		svc, mock := newTestService(t)

		ok, err := svc.ValidateOwnedSet(ctx, "biz-1", nil)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_ListStaff_NewestFirst(t *testing.T) {
	svc, mock := newTestService(t)

	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows(staffColumns()).
			AddRow("staff-2", "biz-1", "B", "b@x.com", "9000000002",
				nil, newer, newer).
			AddRow("staff-1", "biz-1", "A", "a@x.com", "9000000001",
				nil, older, older))

	list, err := svc.ListStaff(context.Background(), "biz-1")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "staff-2", list[0].ID)
}
