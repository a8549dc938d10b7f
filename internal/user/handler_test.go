// AngelaMos | 2026
// handler_test.go

package user

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario-api/internal/config"
	"github.com/bazario/bazario-api/internal/core"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	svc, mock := newTestService(t)

	return NewHandler(svc, config.JWTConfig{
		SessionExpire: 360 * time.Hour,
		CookieName:    "accessToken",
	}), mock
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) core.Envelope {
	t.Helper()

	var envelope core.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestHandler_Register(t *testing.T) {
	t.Run("duplicate phone returns 200 with status false",
		func(t *testing.T) {
			handler, mock := newTestHandler(t)

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("9876543210").
				WillReturnRows(
					sqlmock.NewRows([]string{"exists"}).AddRow(true))

			body := `{"name":"Asha","phone_number":"9876543210",` +
				`"role":"Individual"}`
			req := httptest.NewRequest(http.MethodPost,
				"/users/register-user", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Status)
			assert.Equal(t, "Account already existed", envelope.Message)
		})

	t.Run("schema violations return 400", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		body := `{"name":"Asha","phone_number":"12","role":"Individual"}`
		req := httptest.NewRequest(http.MethodPost,
			"/users/register-user", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeEnvelope(t, rec).Status)
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("success returns 201 with cookie and token",
		func(t *testing.T) {
			handler, mock := newTestHandler(t)

			mock.ExpectQuery(`SELECT id, name, email, phone_number`).
				WithArgs("9876543210").
				WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
					"u-1", "Asha", nil, "9876543210", RoleIndividual,
					nil, nil, time.Now(), time.Now()))

			body := `{"phone_number":"9876543210"}`
			req := httptest.NewRequest(http.MethodPost,
				"/users/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, http.StatusCreated, rec.Code)

			envelope := decodeEnvelope(t, rec)
			assert.True(t, envelope.Status)

			var foundCookie bool
			for _, c := range rec.Result().Cookies() {
				if c.Name == "accessToken" {
					foundCookie = true
					assert.True(t, c.HttpOnly)
					assert.Equal(t, "token", c.Value)
				}
			}
			assert.True(t, foundCookie, "session cookie must be set")
		})

	t.Run("unknown phone returns 200 with status false",
		func(t *testing.T) {
			handler, mock := newTestHandler(t)

			mock.ExpectQuery(`SELECT id, name, email, phone_number`).
				WithArgs("0000000000").
				WillReturnError(sql.ErrNoRows)

			body := `{"phone_number":"0000000000"}`
			req := httptest.NewRequest(http.MethodPost,
				"/users/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Status)
			assert.Equal(t, "User Not Found", envelope.Message)
		})
}

func TestHandler_VerifyOTP_Messages(t *testing.T) {
	handler, mock := newTestHandler(t)

	code := "123456"
	hash, err := core.HashOTP(code)
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	mock.ExpectQuery(`SELECT id, name, email, phone_number`).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			"u-1", "Asha", nil, "9876543210", RoleIndividual,
			&hash, &past, time.Now(), time.Now()))

	body := `{"phone_number":"9876543210","otp":"123456"}`
	req := httptest.NewRequest(http.MethodPost,
		"/users/verify_otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
	assert.Equal(t, "OTP expired", envelope.Message)
}
