// AngelaMos | 2026
// service_test.go

package user

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
)

type stubTokenIssuer struct {
	token string
	err   error
}

func (s stubTokenIssuer) CreateSessionToken(userID string) (string, error) {
	return s.token, s.err
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return NewService(repo, stubTokenIssuer{token: "token"}, 10*time.Minute),
		mock
}

func userColumns() []string {
	return []string{
		"id", "name", "email", "phone_number", "role",
		"otp_hash", "otp_expires_at", "created_at", "updated_at",
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an already registered phone number", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("9876543210").
			WillReturnRows(
				sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := svc.Register(ctx, RegisterRequest{
			Name:        "Asha",
			PhoneNumber: "9876543210",
			Role:        RoleIndividual,
		})

		assert.ErrorIs(t, err, core.ErrDuplicateKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates the user when the phone is free", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("9876543210").
			WillReturnRows(
				sqlmock.NewRows([]string{"exists"}).AddRow(false))

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Asha", nil, "9876543210",
				RoleBusiness).
			WillReturnRows(sqlmock.NewRows(
				[]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		created, err := svc.Register(ctx, RegisterRequest{
			Name:        "Asha",
			PhoneNumber: "9876543210",
			Role:        RoleBusiness,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.IsBusiness())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown phone yields NotFound", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("0000000000").
			WillReturnError(sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "0000000000")

		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("issues a session token", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("9876543210").
			WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
				"u-1", "Asha", nil, "9876543210", RoleIndividual,
				nil, nil, time.Now(), time.Now()))

		resolved, token, err := svc.Login(ctx, "9876543210")

		require.NoError(t, err)
		assert.Equal(t, "u-1", resolved.ID)
		assert.Equal(t, "token", token)
	})
}

func TestService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	code := "123456"
	hash, err := core.HashOTP(code)
	require.NoError(t, err)

	userRow := func(otpHash *string, expiresAt *time.Time) *sqlmock.Rows {
		return sqlmock.NewRows(userColumns()).AddRow(
			"u-1", "Asha", nil, "9876543210", RoleIndividual,
			otpHash, expiresAt, time.Now(), time.Now())
	}

	t.Run("expired window yields Expired", func(t *testing.T) {
		svc, mock := newTestService(t)

		past := time.Now().Add(-time.Minute)
		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("9876543210").
			WillReturnRows(userRow(&hash, &past))

		err := svc.VerifyOTP(ctx, "9876543210", code)
		assert.ErrorIs(t, err, core.ErrOTPExpired)
	})

	t.Run("missing OTP state also yields Expired", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("9876543210").
			WillReturnRows(userRow(nil, nil))

		err := svc.VerifyOTP(ctx, "9876543210", code)
		assert.ErrorIs(t, err, core.ErrOTPExpired)
	})

	t.Run("wrong code yields InvalidOtp", func(t *testing.T) {
		svc, mock := newTestService(t)

		future := time.Now().Add(5 * time.Minute)
		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("9876543210").
			WillReturnRows(userRow(&hash, &future))

		err := svc.VerifyOTP(ctx, "9876543210", "654321")
		assert.ErrorIs(t, err, core.ErrOTPMismatch)
	})

	t.Run("matching code within window passes", func(t *testing.T) {
		svc, mock := newTestService(t)

		future := time.Now().Add(5 * time.Minute)
		mock.ExpectQuery(`SELECT id, name, email, phone_number`).
			WithArgs("9876543210").
			WillReturnRows(userRow(&hash, &future))

		assert.NoError(t, svc.VerifyOTP(ctx, "9876543210", code))
	})
}

func TestService_IssueOTP(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, name, email, phone_number`).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			"u-1", "Asha", nil, "9876543210", RoleIndividual,
			nil, nil, time.Now(), time.Now()))

	mock.ExpectExec(`UPDATE users`).
		WithArgs("u-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	code, err := svc.IssueOTP(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.NoError(t, mock.ExpectationsWereMet())
}
