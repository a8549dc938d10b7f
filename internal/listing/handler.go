// AngelaMos | 2026
// handler.go

package listing

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/middleware"
)

const photoFieldName = "upload_photos"

type Handler struct {
	service       *Service
	validator     *validator.Validate
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{
		service:       service,
		validator:     validator.New(validator.WithRequiredStructEnabled()),
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes mounts the engine on the session-gated listing router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/addNewListing", h.Create)
	r.Get("/getListing", h.ListMine)
	r.Patch("/editListing/{listing_id}", h.Edit)
	r.Delete("/delete-photo/{photo_id}", h.DeletePhoto)
	r.Delete("/remove-staff/{listing_id}/{staff_id}", h.RemoveStaff)
	r.Delete("/deleteListing/{listing_id}", h.Delete)
	r.Get("/home", h.Home)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		core.BadRequest(w, "invalid multipart body")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		core.BadRequest(w, "price must be a number")
		return
	}

	req := CreateListingRequest{
		CategoryID:    r.FormValue("category_id"),
		SubCategoryID: r.FormValue("sub_category_id"),
		Title:         r.FormValue("title"),
		Currency:      r.FormValue("currency"),
		Price:         price,
		Location:      r.FormValue("location"),
		ItemCondition: r.FormValue("item_condition"),
		Description:   r.FormValue("description"),
		StaffIDs:      r.Form["staff_id"],
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	photos, closeAll, err := openUploads(r.MultipartForm.File[photoFieldName])
	if err != nil {
		core.BadRequest(w, "could not read uploaded photos")
		return
	}
	defer closeAll()

	created, err := h.service.CreateListing(
		r.Context(), middleware.GetUserID(r.Context()), req, photos)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoBounds):
			core.Fail(w, "at least 1 photo required and maximum will 10")
		case errors.Is(err, ErrStaffInvalid):
			core.Fail(w, "Some staff not registered or invalid")
		case errors.Is(err, ErrTaxonomyMismatch):
			core.Fail(w, "sub-category does not belong to the selected category")
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "user not found")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "listing added successfully", ToListingResponse(created))
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listing_id")

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		core.BadRequest(w, "invalid multipart body")
		return
	}

	req, err := editRequestFromForm(r)
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	photos, closeAll, err := openUploads(r.MultipartForm.File[photoFieldName])
	if err != nil {
		core.BadRequest(w, "could not read uploaded photos")
		return
	}
	defer closeAll()

	updated, err := h.service.EditListing(
		r.Context(), middleware.GetUserID(r.Context()),
		listingID, req, photos)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "listing not found")
		case errors.Is(err, core.ErrForbidden):
			core.Fail(w, "only business can assign staff")
		case errors.Is(err, ErrStaffInvalid):
			core.Fail(w, "Some staff not registered or invalid")
		case errors.Is(err, ErrTaxonomyMismatch):
			core.Fail(w, "sub-category does not belong to the selected category")
		case errors.Is(err, ErrPhotoLimit):
			core.Fail(w, "a listing can hold at most 10 photos")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "listing updated successfully", ToListingResponse(updated))
}

func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photo_id")

	err := h.service.DeletePhoto(
		r.Context(), middleware.GetUserID(r.Context()), photoID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Fail(w, "you are not allowed to delete this photo")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "photo deleted successfully", nil)
}

func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listing_id")
	staffID := chi.URLParam(r, "staff_id")

	err := h.service.RemoveListingStaff(
		r.Context(), middleware.GetUserID(r.Context()), listingID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "listing not found")
		case errors.Is(err, ErrNoStaffMapping):
			core.Fail(w, "staff not assigned to this listing")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "staff removed from listing", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listing_id")

	err := h.service.DeleteListing(
		r.Context(), middleware.GetUserID(r.Context()), listingID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "listing not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "listing deleted successfully", nil)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListMine(
		r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.Internal(w, err)
		return
	}

	core.Success(w, "listings fetched", listings)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := h.service.Home(
		r.Context(), middleware.GetUserID(r.Context()), page, limit)
	if err != nil {
		core.Internal(w, err)
		return
	}

	core.Success(w, "home feed fetched", feed)
}

func editRequestFromForm(r *http.Request) (EditListingRequest, error) {
	var req EditListingRequest

	req.CategoryID = formOptional(r, "category_id")
	req.SubCategoryID = formOptional(r, "sub_category_id")
	req.Title = formOptional(r, "title")
	req.Currency = formOptional(r, "currency")
	req.Location = formOptional(r, "location")
	req.ItemCondition = formOptional(r, "item_condition")
	req.Description = formOptional(r, "description")
	req.StaffIDs = r.Form["staff_id"]

	if raw := formOptional(r, "price"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return req, errors.New("price must be a number")
		}
		req.Price = &price
	}

	return req, nil
}

// formOptional distinguishes "field absent" from "field present": only keys
// actually sent in the form participate in the partial update.
func formOptional(r *http.Request, key string) *string {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func openUploads(
	headers []*multipart.FileHeader,
) ([]PhotoUpload, func(), error) {
	photos := make([]PhotoUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			_ = f.Close() //nolint:errcheck // best-effort close
		}
	}

	for _, hdr := range headers {
		file, err := hdr.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, file)
		photos = append(photos, PhotoUpload{
			FileName: hdr.Filename,
			Size:     hdr.Size,
			Reader:   file,
		})
	}

	return photos, closeAll, nil
}
