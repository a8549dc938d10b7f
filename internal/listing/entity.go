// AngelaMos | 2026
// entity.go

package listing

import (
	"fmt"
	"time"

	"github.com/bazario/bazario-api/internal/core"
)

const (
	ConditionNew  = "New"
	ConditionUsed = "Used"

	// MaxPhotos bounds the photo set per listing through create and edit.
	MaxPhotos = 10
)

// Validation failures surfaced by the engine, each narrowing
// core.ErrInvalidInput so handlers can pick the right message.
var (
	ErrPhotoBounds = fmt.Errorf(
		"%w: at least 1 photo required and maximum will 10",
		core.ErrInvalidInput)
	ErrPhotoLimit = fmt.Errorf(
		"%w: a listing can hold at most 10 photos", core.ErrInvalidInput)
	ErrStaffInvalid = fmt.Errorf(
		"%w: some staff not registered or invalid", core.ErrInvalidInput)
	ErrTaxonomyMismatch = fmt.Errorf(
		"%w: sub-category does not belong to category", core.ErrInvalidInput)
	ErrNoStaffMapping = fmt.Errorf(
		"%w: staff not assigned to listing", core.ErrInvalidInput)
)

type Listing struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	CategoryID    string    `db:"category_id"`
	SubCategoryID string    `db:"sub_category_id"`
	Title         string    `db:"title"`
	Currency      string    `db:"currency"`
	Price         float64   `db:"price"`
	Location      string    `db:"location"`
	ItemCondition string    `db:"item_condition"`
	Description   *string   `db:"description"`
	IsBusiness    bool      `db:"is_business"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ListingPhoto keeps both the public URL and the storage object name so a
// deleted row can take its object with it.
type ListingPhoto struct {
	ID         string    `db:"id"`
	ListingID  string    `db:"listing_id"`
	ImageURL   string    `db:"image_url"`
	ObjectName string    `db:"object_name"`
	CreatedAt  time.Time `db:"created_at"`
}

// AssignedStaff is a listing_staff mapping joined with the staff row it
// points at, shaped for display.
type AssignedStaff struct {
	ListingID   string `db:"listing_id"`
	StaffID     string `db:"staff_id"`
	Name        string `db:"name"`
	PhoneNumber string `db:"phone_number"`
}
