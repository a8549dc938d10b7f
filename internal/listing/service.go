// AngelaMos | 2026
// service.go

package listing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/storage"
	"github.com/bazario/bazario-api/internal/user"
)

// CallerResolver looks up the acting user; the engine re-checks existence
// even though the session gate already did, so a row deleted mid-session
// cannot create listings.
type CallerResolver interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
}

// StaffValidator confirms a set of staff ids is wholly owned by a business.
type StaffValidator interface {
	ValidateOwnedSet(
		ctx context.Context,
		businessID string,
		staffIDs []string,
	) (bool, error)
}

// TaxonomyChecker confirms a sub-category hangs under a category.
type TaxonomyChecker interface {
	SubCategoryBelongsTo(
		ctx context.Context,
		subCategoryID, categoryID string,
	) (bool, error)
}

// FavouriteFlagger supplies the caller's favourite set for feed decoration.
// Implemented by the favourites service and wired in main.
type FavouriteFlagger interface {
	FavouriteListingIDs(
		ctx context.Context,
		userID string,
	) (map[string]struct{}, error)
}

// PhotoUpload is one multipart file handed to the engine.
type PhotoUpload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

type Service struct {
	db         *sqlx.DB
	repo       Repository
	users      CallerResolver
	staff      StaffValidator
	taxonomy   TaxonomyChecker
	favourites FavouriteFlagger
	store      storage.Store
	logger     *slog.Logger
}

func NewService(
	db *sqlx.DB,
	users CallerResolver,
	staff StaffValidator,
	taxonomy TaxonomyChecker,
	store storage.Store,
	favourites FavouriteFlagger,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:         db,
		repo:       NewRepository(db),
		users:      users,
		staff:      staff,
		taxonomy:   taxonomy,
		favourites: favourites,
		store:      store,
		logger:     logger,
	}
}

// CreateListing validates taxonomy and staff references, uploads the photos,
// then persists the listing, its staff mappings, and its photo rows as one
// transaction. Any failure after the uploads rolls the rows back and makes a
// best-effort sweep of the uploaded objects.
func (s *Service) CreateListing(
	ctx context.Context,
	callerID string,
	req CreateListingRequest,
	photos []PhotoUpload,
) (*Listing, error) {
	if len(photos) < 1 || len(photos) > MaxPhotos {
		return nil, ErrPhotoBounds
	}

	caller, err := s.users.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	isBusiness := caller.IsBusiness()

	staffIDs := []string{}
	if isBusiness && len(req.StaffIDs) > 0 {
		ok, err := s.staff.ValidateOwnedSet(ctx, callerID, req.StaffIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStaffInvalid
		}
		staffIDs = req.StaffIDs
	}

	ok, err := s.taxonomy.SubCategoryBelongsTo(
		ctx, req.SubCategoryID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaxonomyMismatch
	}

	created := &Listing{
		ID:            uuid.New().String(),
		UserID:        callerID,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Title:         req.Title,
		Currency:      req.Currency,
		Price:         req.Price,
		Location:      req.Location,
		ItemCondition: req.ItemCondition,
		IsBusiness:    isBusiness,
	}
	if req.Description != "" {
		description := req.Description
		created.Description = &description
	}

	uploaded, err := s.uploadPhotos(ctx, created.ID, photos)
	if err != nil {
		return nil, err
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Create(ctx, created); err != nil {
			return err
		}

		if err := txRepo.InsertStaffMappings(
			ctx, created.ID, staffIDs); err != nil {
			return err
		}

		return txRepo.InsertPhotos(ctx, uploaded)
	})
	if err != nil {
		s.sweepObjects(ctx, uploaded)
		return nil, err
	}

	return created, nil
}

// EditListing applies a partial update under the same transactional rules as
// creation. Staff mappings are a union: only ids not already mapped are
// inserted, nothing is removed.
func (s *Service) EditListing(
	ctx context.Context,
	callerID, listingID string,
	req EditListingRequest,
	newPhotos []PhotoUpload,
) (*Listing, error) {
	current, err := s.repo.GetOwned(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}

	// The cross-check only fires when both halves of the classification
	// arrive together; a lone category_id or sub_category_id goes through
	// unchecked, matching the established API contract.
	if req.CategoryID != nil && req.SubCategoryID != nil {
		ok, err := s.taxonomy.SubCategoryBelongsTo(
			ctx, *req.SubCategoryID, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrTaxonomyMismatch
		}
	}

	var staffToAdd []string
	if len(req.StaffIDs) > 0 {
		caller, err := s.users.GetUser(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !caller.IsBusiness() {
			return nil, fmt.Errorf("edit listing: %w", core.ErrForbidden)
		}

		ok, err := s.staff.ValidateOwnedSet(ctx, callerID, req.StaffIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStaffInvalid
		}

		existing, err := s.repo.GetStaffIDs(ctx, listingID)
		if err != nil {
			return nil, err
		}

		mapped := make(map[string]struct{}, len(existing))
		for _, id := range existing {
			mapped[id] = struct{}{}
		}
		for _, id := range req.StaffIDs {
			if _, ok := mapped[id]; !ok {
				staffToAdd = append(staffToAdd, id)
				mapped[id] = struct{}{}
			}
		}
	}

	var uploaded []ListingPhoto
	if len(newPhotos) > 0 {
		existingCount, err := s.repo.CountPhotos(ctx, listingID)
		if err != nil {
			return nil, err
		}
		if existingCount+len(newPhotos) > MaxPhotos {
			return nil, ErrPhotoLimit
		}

		uploaded, err = s.uploadPhotos(ctx, listingID, newPhotos)
		if err != nil {
			return nil, err
		}
	}

	applyEdit(current, req)

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Update(ctx, current); err != nil {
			return err
		}

		if err := txRepo.InsertStaffMappings(
			ctx, listingID, staffToAdd); err != nil {
			return err
		}

		return txRepo.InsertPhotos(ctx, uploaded)
	})
	if err != nil {
		s.sweepObjects(ctx, uploaded)
		return nil, err
	}

	return current, nil
}

// DeletePhoto removes a single photo row and its stored object. The
// ownership join also covers the missing-photo case. No minimum photo count
// is enforced on the way down.
func (s *Service) DeletePhoto(
	ctx context.Context,
	callerID, photoID string,
) error {
	photo, err := s.repo.GetPhotoOwned(ctx, callerID, photoID)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePhoto(ctx, photo.ID); err != nil {
		return err
	}

	if err := s.store.DeletePhoto(ctx, photo.ObjectName); err != nil {
		s.logger.Warn("orphaned photo object",
			"object", photo.ObjectName, "error", err)
	}

	return nil
}

func (s *Service) RemoveListingStaff(
	ctx context.Context,
	callerID, listingID, staffID string,
) error {
	if _, err := s.repo.GetOwned(ctx, callerID, listingID); err != nil {
		return err
	}

	rows, err := s.repo.DeleteStaffMapping(ctx, listingID, staffID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoStaffMapping
	}

	return nil
}

// DeleteListing removes the photos, the staff mappings, and the listing row
// as one transaction, then sweeps the stored objects.
func (s *Service) DeleteListing(
	ctx context.Context,
	callerID, listingID string,
) error {
	if _, err := s.repo.GetOwned(ctx, callerID, listingID); err != nil {
		return err
	}

	photos, err := s.repo.PhotosByListingIDs(ctx, []string{listingID})
	if err != nil {
		return err
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.DeletePhotos(ctx, listingID); err != nil {
			return err
		}

		if err := txRepo.DeleteStaffMappings(ctx, listingID); err != nil {
			return err
		}

		return txRepo.Delete(ctx, listingID)
	})
	if err != nil {
		return err
	}

	s.sweepObjects(ctx, photos)

	return nil
}

// ListMine returns the caller's listings newest-first with photos and
// assigned staff attached through explicit batch joins.
func (s *Service) ListMine(
	ctx context.Context,
	callerID string,
) ([]ListingResponse, error) {
	listings, err := s.repo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, listings, nil)
}

// Home is the shared paginated feed, with each listing flagged as favourite
// or not for the caller.
func (s *Service) Home(
	ctx context.Context,
	callerID string,
	page, limit int,
) (*FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	listings, err := s.repo.ListFeed(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountFeed(ctx)
	if err != nil {
		return nil, err
	}

	favourites, err := s.favourites.FavouriteListingIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}

	decorated, err := s.decorate(ctx, listings, favourites)
	if err != nil {
		return nil, err
	}

	return &FeedResponse{
		Listings: decorated,
		Page:     page,
		Limit:    limit,
		Total:    total,
	}, nil
}

// ListingExists backs the favourites index without importing it.
func (s *Service) ListingExists(
	ctx context.Context,
	listingID string,
) (bool, error) {
	return s.repo.Exists(ctx, listingID)
}

func (s *Service) uploadPhotos(
	ctx context.Context,
	listingID string,
	photos []PhotoUpload,
) ([]ListingPhoto, error) {
	uploaded := make([]ListingPhoto, 0, len(photos))
	for _, p := range photos {
		object, err := s.store.UploadPhoto(
			ctx, listingID, p.FileName, p.Reader, p.Size)
		if err != nil {
			s.sweepObjects(ctx, uploaded)
			return nil, fmt.Errorf("upload photo: %w", err)
		}

		uploaded = append(uploaded, ListingPhoto{
			ID:         uuid.New().String(),
			ListingID:  listingID,
			ImageURL:   object.URL,
			ObjectName: object.ObjectName,
		})
	}

	return uploaded, nil
}

// sweepObjects deletes uploaded objects after a failed or undone write.
// Failures are logged and swallowed: a stray object is recoverable, a
// partial listing is not.
func (s *Service) sweepObjects(ctx context.Context, photos []ListingPhoto) {
	for _, p := range photos {
		if err := s.store.DeletePhoto(ctx, p.ObjectName); err != nil {
			s.logger.Warn("orphaned photo object",
				"object", p.ObjectName, "error", err)
		}
	}
}

func (s *Service) decorate(
	ctx context.Context,
	listings []Listing,
	favourites map[string]struct{},
) ([]ListingResponse, error) {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}

	photos, err := s.repo.PhotosByListingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	assigned, err := s.repo.StaffByListingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	photosByListing := make(map[string][]PhotoResponse, len(listings))
	for _, p := range photos {
		photosByListing[p.ListingID] = append(photosByListing[p.ListingID],
			PhotoResponse{ID: p.ID, ImageURL: p.ImageURL})
	}

	staffByListing := make(map[string][]StaffInfoResponse, len(listings))
	for _, a := range assigned {
		staffByListing[a.ListingID] = append(staffByListing[a.ListingID],
			StaffInfoResponse{
				ID:          a.StaffID,
				Name:        a.Name,
				PhoneNumber: a.PhoneNumber,
			})
	}

	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		resp := ToListingResponse(&listings[i])
		resp.Photos = photosByListing[resp.ID]
		resp.Staff = staffByListing[resp.ID]
		if favourites != nil {
			_, fav := favourites[resp.ID]
			resp.IsFavourite = &fav
		}
		out = append(out, resp)
	}

	return out, nil
}

func applyEdit(l *Listing, req EditListingRequest) {
	if req.CategoryID != nil {
		l.CategoryID = *req.CategoryID
	}
	if req.SubCategoryID != nil {
		l.SubCategoryID = *req.SubCategoryID
	}
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Currency != nil {
		l.Currency = *req.Currency
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.ItemCondition != nil {
		l.ItemCondition = *req.ItemCondition
	}
	if req.Description != nil {
		l.Description = req.Description
	}
}
