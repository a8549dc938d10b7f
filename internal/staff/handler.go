// AngelaMos | 2026
// handler.go

package staff

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/middleware"
)

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

// RegisterRoutes mounts the staff CRUD on the session-gated listing router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/addNewStaff", h.AddStaff)
	r.Get("/getStaffList", h.ListStaff)
	r.Patch("/edit-staff-details/{staff_id}", h.EditStaff)
	r.Delete("/delete-staff/{staff_id}", h.DeleteStaff)
}

func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req AddStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	businessID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())

	member, err := h.service.AddStaff(r.Context(), businessID, role, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Fail(w, "only business can add staff")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Fail(w, "staff already existed")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "New Staff Added successfully", ToStaffResponse(member))
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	businessID := middleware.GetUserID(r.Context())

	staffList, err := h.service.ListStaff(r.Context(), businessID)
	if err != nil {
		core.Internal(w, err)
		return
	}

	core.Success(w, "Staff List Fetched", ToStaffResponses(staffList))
}

func (h *Handler) EditStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staff_id")

	var req EditStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	businessID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())

	member, err := h.service.EditStaff(
		r.Context(), businessID, role, staffID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Fail(w, "only Business can edit staff details")
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "staff not found")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Fail(w, "another staff already exist with these phone number")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "details edited successfully", ToStaffResponse(member))
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staff_id")

	businessID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())

	err := h.service.DeleteStaff(r.Context(), businessID, role, staffID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Fail(w, "only business can delete staff")
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "Staff not found")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "staff deleted successfully", nil)
}
