// AngelaMos | 2026
// handler.go

package favourite

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/middleware"
)

type AddFavouriteRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

type FavouriteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the favourites surface on the session-gated listing
// router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/add-favourites", h.AddFavourite)
}

func (h *Handler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	var req AddFavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	fav, err := h.service.AddFavourite(
		r.Context(), middleware.GetUserID(r.Context()), req.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "listing not found")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Fail(w, "already in favourites")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "added to favourites", FavouriteResponse{
		ID:        fav.ID,
		UserID:    fav.UserID,
		ListingID: fav.ListingID,
		CreatedAt: fav.CreatedAt,
	})
}
