// AngelaMos | 2026
// service_test.go

package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/storage"
	"github.com/bazario/bazario-api/internal/user"
)

type fakeUsers struct {
	users map[string]*user.User
}

func (f fakeUsers) GetUser(
	ctx context.Context,
	id string,
) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

type fakeStaffValidator struct {
	valid  bool
	called bool
}

func (f *fakeStaffValidator) ValidateOwnedSet(
	ctx context.Context,
	businessID string,
	staffIDs []string,
) (bool, error) {
	f.called = true
	return f.valid, nil
}

type fakeTaxonomy struct {
	belongs bool
	calls   int
}

func (f *fakeTaxonomy) SubCategoryBelongsTo(
	ctx context.Context,
	subCategoryID, categoryID string,
) (bool, error) {
	f.calls++
	return f.belongs, nil
}

type fakeFavourites struct {
	set map[string]struct{}
}

func (f fakeFavourites) FavouriteListingIDs(
	ctx context.Context,
	userID string,
) (map[string]struct{}, error) {
	return f.set, nil
}

// fakeStore records uploads and deletions so tests can assert the object
// sweep after a rolled-back transaction.
type fakeStore struct {
	uploads int
	deleted []string
}

func (f *fakeStore) UploadPhoto(
	ctx context.Context,
	listingID, fileName string,
	file io.Reader,
	size int64,
) (storage.PhotoObject, error) {
	f.uploads++
	name := fmt.Sprintf("listings/%s/%d", listingID, f.uploads)
	return storage.PhotoObject{
		ObjectName: name,
		URL:        "http://cdn.local/" + name,
	}, nil
}

func (f *fakeStore) DeletePhoto(ctx context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

type engineFixture struct {
	svc      *Service
	mock     sqlmock.Sqlmock
	users    fakeUsers
	staff    *fakeStaffValidator
	taxonomy *fakeTaxonomy
	store    *fakeStore
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	fix := &engineFixture{
		mock: mock,
		users: fakeUsers{users: map[string]*user.User{
			"biz-1": {ID: "biz-1", Role: user.RoleBusiness},
			"ind-1": {ID: "ind-1", Role: user.RoleIndividual},
		}},
		staff:    &fakeStaffValidator{valid: true},
		taxonomy: &fakeTaxonomy{belongs: true},
		store:    &fakeStore{},
	}

	fix.svc = NewService(
		sqlxDB,
		fix.users,
		fix.staff,
		fix.taxonomy,
		fix.store,
		fakeFavourites{set: map[string]struct{}{"fav-listing": {}}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return fix
}

func photoUploads(n int) []PhotoUpload {
	photos := make([]PhotoUpload, 0, n)
	for i := 0; i < n; i++ {
		photos = append(photos, PhotoUpload{
			FileName: fmt.Sprintf("photo-%d.jpg", i),
			Size:     64,
			Reader:   strings.NewReader("jpeg bytes"),
		})
	}
	return photos
}

func validCreateRequest() CreateListingRequest {
	return CreateListingRequest{
		CategoryID:    "cat-1",
		SubCategoryID: "sub-1",
		Title:         "iPhone 14 Pro",
		Currency:      "INR",
		Price:         75000,
		Location:      "Indore",
		ItemCondition: ConditionUsed,
	}
}

func listingRow(id, userID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "category_id", "sub_category_id", "title",
		"currency", "price", "location", "item_condition", "description",
		"is_business", "created_at", "updated_at",
	}).AddRow(id, userID, "cat-1", "sub-1", "iPhone 14 Pro", "INR",
		75000.0, "Indore", ConditionUsed, nil, true,
		time.Now(), time.Now())
}

func TestCreateListing_PhotoBounds(t *testing.T) {
	ctx := context.Background()

	for _, count := range []int{0, 11} {
		fix := newEngine(t)

		_, err := fix.svc.CreateListing(
			ctx, "ind-1", validCreateRequest(), photoUploads(count))

		assert.ErrorIs(t, err, ErrPhotoBounds, "count=%d", count)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Zero(t, fix.store.uploads, "nothing should be uploaded")
		assert.NoError(t, fix.mock.ExpectationsWereMet(),
			"no rows should be written")
	}
}

func TestCreateListing_RejectsForeignStaff(t *testing.T) {
	fix := newEngine(t)
	fix.staff.valid = false

	req := validCreateRequest()
	req.StaffIDs = []string{"staff-of-other-business"}

	_, err := fix.svc.CreateListing(
		context.Background(), "biz-1", req, photoUploads(2))

	assert.ErrorIs(t, err, ErrStaffInvalid)
	assert.Zero(t, fix.store.uploads)
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestCreateListing_IgnoresStaffForIndividual(t *testing.T) {
	fix := newEngine(t)

	req := validCreateRequest()
	req.StaffIDs = []string{"staff-1"}

	fix.mock.ExpectBegin()
	fix.mock.ExpectQuery(`INSERT INTO listings`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	fix.mock.ExpectExec(`INSERT INTO listing_photos`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectCommit()

	created, err := fix.svc.CreateListing(
		context.Background(), "ind-1", req, photoUploads(1))

	require.NoError(t, err)
	assert.False(t, created.IsBusiness)
	assert.False(t, fix.staff.called,
		"staff validation must not run for individuals")
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestCreateListing_SubCategoryMismatch(t *testing.T) {
	fix := newEngine(t)
	fix.taxonomy.belongs = false

	_, err := fix.svc.CreateListing(
		context.Background(), "ind-1", validCreateRequest(),
		photoUploads(2))

	assert.ErrorIs(t, err, ErrTaxonomyMismatch)
	assert.Zero(t, fix.store.uploads)
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestCreateListing_RollsBackOnPhotoInsertFailure(t *testing.T) {
	fix := newEngine(t)

	req := validCreateRequest()
	req.StaffIDs = []string{"staff-1"}

	fix.mock.ExpectBegin()
	fix.mock.ExpectQuery(`INSERT INTO listings`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	fix.mock.ExpectExec(`INSERT INTO listing_staff`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectExec(`INSERT INTO listing_photos`).
		WillReturnError(errors.New("disk full"))
	fix.mock.ExpectRollback()

	_, err := fix.svc.CreateListing(
		context.Background(), "biz-1", req, photoUploads(3))

	require.Error(t, err)
	assert.NoError(t, fix.mock.ExpectationsWereMet(),
		"listing and staff rows must roll back with the photos")
	assert.Len(t, fix.store.deleted, 3,
		"uploaded objects are swept after rollback")
}

func TestCreateListing_CommitsAllRows(t *testing.T) {
	fix := newEngine(t)

	req := validCreateRequest()
	req.StaffIDs = []string{"staff-1", "staff-2"}

	fix.mock.ExpectBegin()
	fix.mock.ExpectQuery(`INSERT INTO listings`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	fix.mock.ExpectExec(`INSERT INTO listing_staff`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	fix.mock.ExpectExec(`INSERT INTO listing_photos`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectCommit()

	created, err := fix.svc.CreateListing(
		context.Background(), "biz-1", req, photoUploads(2))

	require.NoError(t, err)
	assert.True(t, created.IsBusiness)
	assert.Equal(t, "biz-1", created.UserID)
	assert.Empty(t, fix.store.deleted)
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestEditListing_OwnershipGate(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "ind-1").
		WillReturnError(sql.ErrNoRows)

	_, err := fix.svc.EditListing(
		context.Background(), "ind-1", "listing-1",
		EditListingRequest{}, nil)

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, fix.mock.ExpectationsWereMet(),
		"no mutation may run for a foreign listing")
}

func TestEditListing_StaffForbiddenForIndividual(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "ind-1").
		WillReturnRows(listingRow("listing-1", "ind-1"))

	_, err := fix.svc.EditListing(
		context.Background(), "ind-1", "listing-1",
		EditListingRequest{StaffIDs: []string{"staff-1"}}, nil)

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestEditListing_StaffUnionIsIdempotent(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "biz-1").
		WillReturnRows(listingRow("listing-1", "biz-1"))

	fix.mock.ExpectQuery(`SELECT staff_id FROM listing_staff`).
		WithArgs("listing-1").
		WillReturnRows(sqlmock.NewRows([]string{"staff_id"}).
			AddRow("staff-1"))

	fix.mock.ExpectBegin()
	fix.mock.ExpectExec(`UPDATE listings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Only the mapping absent so far is inserted.
	fix.mock.ExpectExec(`INSERT INTO listing_staff`).
		WithArgs("listing-1", "staff-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectCommit()

	_, err := fix.svc.EditListing(
		context.Background(), "biz-1", "listing-1",
		EditListingRequest{StaffIDs: []string{"staff-1", "staff-2"}}, nil)

	require.NoError(t, err)
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestEditListing_PhotoLimit(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "ind-1").
		WillReturnRows(listingRow("listing-1", "ind-1"))

	fix.mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("listing-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	_, err := fix.svc.EditListing(
		context.Background(), "ind-1", "listing-1",
		EditListingRequest{}, photoUploads(3))

	assert.ErrorIs(t, err, ErrPhotoLimit)
	assert.Zero(t, fix.store.uploads,
		"no upload happens once the cap is known to overflow")
}

func TestEditListing_TaxonomyCheckOnlyWhenBothSupplied(t *testing.T) {
	ctx := context.Background()

	t.Run("both halves trigger the cross-check", func(t *testing.T) {
		fix := newEngine(t)
		fix.taxonomy.belongs = false

		fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
			WillReturnRows(listingRow("listing-1", "ind-1"))

		catID, subID := "cat-2", "sub-9"
		_, err := fix.svc.EditListing(ctx, "ind-1", "listing-1",
			EditListingRequest{
				CategoryID:    &catID,
				SubCategoryID: &subID,
			}, nil)

		assert.ErrorIs(t, err, ErrTaxonomyMismatch)
		assert.Equal(t, 1, fix.taxonomy.calls)
	})

	t.Run("a lone category id skips the cross-check", func(t *testing.T) {
		fix := newEngine(t)
		fix.taxonomy.belongs = false

		fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
			WillReturnRows(listingRow("listing-1", "ind-1"))
		fix.mock.ExpectBegin()
		fix.mock.ExpectExec(`UPDATE listings`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		fix.mock.ExpectCommit()

		catID := "cat-2"
		_, err := fix.svc.EditListing(ctx, "ind-1", "listing-1",
			EditListingRequest{CategoryID: &catID}, nil)

		require.NoError(t, err)
		assert.Zero(t, fix.taxonomy.calls)
	})
}

func TestRemoveListingStaff_NoMapping(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "biz-1").
		WillReturnRows(listingRow("listing-1", "biz-1"))

	fix.mock.ExpectExec(`DELETE FROM listing_staff`).
		WithArgs("listing-1", "staff-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := fix.svc.RemoveListingStaff(
		context.Background(), "biz-1", "listing-1", "staff-9")

	assert.ErrorIs(t, err, ErrNoStaffMapping)
}

func TestDeleteListing_RemovesEverything(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs("listing-1", "biz-1").
		WillReturnRows(listingRow("listing-1", "biz-1"))

	fix.mock.ExpectQuery(`SELECT id, listing_id, image_url`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "listing_id", "image_url", "object_name", "created_at",
		}).AddRow("p-1", "listing-1", "http://cdn/p1", "obj-1", time.Now()))

	fix.mock.ExpectBegin()
	fix.mock.ExpectExec(`DELETE FROM listing_photos`).
		WithArgs("listing-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectExec(`DELETE FROM listing_staff`).
		WithArgs("listing-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	fix.mock.ExpectExec(`DELETE FROM listings`).
		WithArgs("listing-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	fix.mock.ExpectCommit()

	err := fix.svc.DeleteListing(
		context.Background(), "biz-1", "listing-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"obj-1"}, fix.store.deleted)
	assert.NoError(t, fix.mock.ExpectationsWereMet())
}

func TestDeletePhoto_OwnershipCoversMissing(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT p.id, p.listing_id`).
		WithArgs("photo-1", "ind-1").
		WillReturnError(sql.ErrNoRows)

	err := fix.svc.DeletePhoto(context.Background(), "ind-1", "photo-1")

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestHome_FlagsFavourites(t *testing.T) {
	fix := newEngine(t)

	fix.mock.ExpectQuery(`SELECT (.+) FROM listings`).
		WithArgs(20, 0).
		WillReturnRows(listingRow("fav-listing", "biz-1"))
	fix.mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	fix.mock.ExpectQuery(`SELECT id, listing_id, image_url`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "listing_id", "image_url", "object_name", "created_at",
		}))
	fix.mock.ExpectQuery(`SELECT ls.listing_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"listing_id", "staff_id", "name", "phone_number",
		}))

	feed, err := fix.svc.Home(context.Background(), "ind-1", 1, 20)

	require.NoError(t, err)
	require.Len(t, feed.Listings, 1)
	require.NotNil(t, feed.Listings[0].IsFavourite)
	assert.True(t, *feed.Listings[0].IsFavourite)
	assert.Equal(t, 1, feed.Total)
}
