// AngelaMos | 2026
// service_test.go

package favourite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario-api/internal/core"
)

type stubListings struct {
	exists bool
}

func (s stubListings) ListingExists(
	ctx context.Context,
	listingID string,
) (bool, error) {
	return s.exists, nil
}

func newTestService(
	t *testing.T,
	listingExists bool,
) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(
		NewRepository(sqlx.NewDb(db, "sqlmock")),
		stubListings{exists: listingExists})

	return svc, mock
}

func TestService_AddFavourite(t *testing.T) {
	ctx := context.Background()

	t.Run("missing listing yields NotFound", func(t *testing.T) {
		svc, mock := newTestService(t, false)

		_, err := svc.AddFavourite(ctx, "u-1", "gone")

		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair yields Conflict", func(t *testing.T) {
		svc, mock := newTestService(t, true)

		mock.ExpectQuery(`INSERT INTO favourites`).
			WithArgs(sqlmock.AnyArg(), "u-1", "listing-1").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := svc.AddFavourite(ctx, "u-1", "listing-1")

		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	t.Run("bookmarks an existing listing", func(t *testing.T) {
		svc, mock := newTestService(t, true)

		mock.ExpectQuery(`INSERT INTO favourites`).
			WithArgs(sqlmock.AnyArg(), "u-1", "listing-1").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
				AddRow(time.Now()))

		fav, err := svc.AddFavourite(ctx, "u-1", "listing-1")

		require.NoError(t, err)
		assert.Equal(t, "listing-1", fav.ListingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_FavouriteListingIDs(t *testing.T) {
	svc, mock := newTestService(t, true)

	mock.ExpectQuery(`SELECT listing_id FROM favourites`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"listing_id"}).
			AddRow("listing-1").
			AddRow("listing-2"))

	set, err := svc.FavouriteListingIDs(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Contains(t, set, "listing-1")
	assert.Contains(t, set, "listing-2")
	assert.NotContains(t, set, "listing-3")
}
