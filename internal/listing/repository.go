// AngelaMos | 2026
// repository.go

package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bazario/bazario-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetOwned(ctx context.Context, userID, listingID string) (*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, listingID string) error
	Exists(ctx context.Context, listingID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Listing, error)
	ListFeed(ctx context.Context, limit, offset int) ([]Listing, error)
	CountFeed(ctx context.Context) (int, error)

	InsertStaffMappings(
		ctx context.Context,
		listingID string,
		staffIDs []string,
	) error
	GetStaffIDs(ctx context.Context, listingID string) ([]string, error)
	DeleteStaffMapping(
		ctx context.Context,
		listingID, staffID string,
	) (int64, error)
	DeleteStaffMappings(ctx context.Context, listingID string) error
	StaffByListingIDs(
		ctx context.Context,
		listingIDs []string,
	) ([]AssignedStaff, error)

	InsertPhotos(ctx context.Context, photos []ListingPhoto) error
	GetPhotoOwned(
		ctx context.Context,
		userID, photoID string,
	) (*ListingPhoto, error)
	DeletePhoto(ctx context.Context, photoID string) error
	DeletePhotos(ctx context.Context, listingID string) error
	CountPhotos(ctx context.Context, listingID string) (int, error)
	PhotosByListingIDs(
		ctx context.Context,
		listingIDs []string,
	) ([]ListingPhoto, error)
}

type repository struct {
	db core.DBTX
}

// NewRepository works over either the pool or an open transaction, so the
// service can run the same queries inside its unit of work.
func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const listingColumns = `id, user_id, category_id, sub_category_id, title,
	currency, price, location, item_condition, description, is_business,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings (id, user_id, category_id, sub_category_id,
		                      title, currency, price, location,
		                      item_condition, description, is_business)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, l, query,
		l.ID,
		l.UserID,
		l.CategoryID,
		l.SubCategoryID,
		l.Title,
		l.Currency,
		l.Price,
		l.Location,
		l.ItemCondition,
		l.Description,
		l.IsBusiness,
	)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}

	return nil
}

func (r *repository) GetOwned(
	ctx context.Context,
	userID, listingID string,
) (*Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1 AND user_id = $2`

	var l Listing
	err := r.db.GetContext(ctx, &l, query, listingID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get listing: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Listing) error {
	query := `
		UPDATE listings
		SET category_id = $2, sub_category_id = $3, title = $4,
		    currency = $5, price = $6, location = $7, item_condition = $8,
		    description = $9, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.CategoryID,
		l.SubCategoryID,
		l.Title,
		l.Currency,
		l.Price,
		l.Location,
		l.ItemCondition,
		l.Description,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update listing: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, listingID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete listing: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Exists(
	ctx context.Context,
	listingID string,
) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, listingID)
	if err != nil {
		return false, fmt.Errorf("check listing exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	listings := []Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, userID); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	return listings, nil
}

func (r *repository) ListFeed(
	ctx context.Context,
	limit, offset int,
) ([]Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	listings := []Listing{}
	err := r.db.SelectContext(ctx, &listings, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	return listings, nil
}

func (r *repository) CountFeed(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM listings`)
	if err != nil {
		return 0, fmt.Errorf("count feed: %w", err)
	}

	return count, nil
}

func (r *repository) InsertStaffMappings(
	ctx context.Context,
	listingID string,
	staffIDs []string,
) error {
	if len(staffIDs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(staffIDs))
	args := make([]any, 0, len(staffIDs)+1)
	args = append(args, listingID)
	for i, id := range staffIDs {
		placeholders = append(placeholders, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, id)
	}

	query := `INSERT INTO listing_staff (listing_id, staff_id) VALUES ` +
		strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert staff mappings: %w", err)
	}

	return nil
}

func (r *repository) GetStaffIDs(
	ctx context.Context,
	listingID string,
) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT staff_id FROM listing_staff WHERE listing_id = $1`,
		listingID)
	if err != nil {
		return nil, fmt.Errorf("get staff mappings: %w", err)
	}

	return ids, nil
}

func (r *repository) DeleteStaffMapping(
	ctx context.Context,
	listingID, staffID string,
) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_staff WHERE listing_id = $1 AND staff_id = $2`,
		listingID, staffID)
	if err != nil {
		return 0, fmt.Errorf("delete staff mapping: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete staff mapping: %w", err)
	}

	return rows, nil
}

func (r *repository) DeleteStaffMappings(
	ctx context.Context,
	listingID string,
) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_staff WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("delete staff mappings: %w", err)
	}

	return nil
}

func (r *repository) StaffByListingIDs(
	ctx context.Context,
	listingIDs []string,
) ([]AssignedStaff, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT ls.listing_id, ls.staff_id, s.name, s.phone_number
		FROM listing_staff ls
		JOIN staff s ON s.id = ls.staff_id
		WHERE ls.listing_id IN (?)`, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("staff by listings: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	assigned := []AssignedStaff{}
	if err := r.db.SelectContext(ctx, &assigned, query, args...); err != nil {
		return nil, fmt.Errorf("staff by listings: %w", err)
	}

	return assigned, nil
}

func (r *repository) InsertPhotos(
	ctx context.Context,
	photos []ListingPhoto,
) error {
	if len(photos) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(photos))
	args := make([]any, 0, len(photos)*4)
	for i, p := range photos {
		placeholders = append(placeholders,
			fmt.Sprintf("($%d, $%d, $%d, $%d)",
				i*4+1, i*4+2, i*4+3, i*4+4))
		args = append(args, p.ID, p.ListingID, p.ImageURL, p.ObjectName)
	}

	query := `INSERT INTO listing_photos (id, listing_id, image_url,
		object_name) VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert photos: %w", err)
	}

	return nil
}

// GetPhotoOwned resolves a photo only when its listing belongs to the user;
// a missing photo and a foreign photo are indistinguishable on purpose.
func (r *repository) GetPhotoOwned(
	ctx context.Context,
	userID, photoID string,
) (*ListingPhoto, error) {
	query := `
		SELECT p.id, p.listing_id, p.image_url, p.object_name, p.created_at
		FROM listing_photos p
		JOIN listings l ON l.id = p.listing_id
		WHERE p.id = $1 AND l.user_id = $2`

	var photo ListingPhoto
	err := r.db.GetContext(ctx, &photo, query, photoID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get photo: %w", core.ErrForbidden)
	}
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}

	return &photo, nil
}

func (r *repository) DeletePhoto(ctx context.Context, photoID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_photos WHERE id = $1`, photoID)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete photo: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeletePhotos(
	ctx context.Context,
	listingID string,
) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM listing_photos WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("delete photos: %w", err)
	}

	return nil
}

func (r *repository) CountPhotos(
	ctx context.Context,
	listingID string,
) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM listing_photos WHERE listing_id = $1`,
		listingID)
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}

	return count, nil
}

func (r *repository) PhotosByListingIDs(
	ctx context.Context,
	listingIDs []string,
) ([]ListingPhoto, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, listing_id, image_url, object_name, created_at
		FROM listing_photos
		WHERE listing_id IN (?)
		ORDER BY created_at ASC`, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("photos by listings: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	photos := []ListingPhoto{}
	if err := r.db.SelectContext(ctx, &photos, query, args...); err != nil {
		return nil, fmt.Errorf("photos by listings: %w", err)
	}

	return photos, nil
}
