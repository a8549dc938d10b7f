// AngelaMos | 2026
// handler.go

package taxonomy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bazario/bazario-api/internal/core"
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

// RegisterRoutes mounts the taxonomy CRUD under /admin. The routes carry no
// session gate; admin authentication is a separate concern still to come.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/addCategory", h.AddCategory)
		r.Put("/updateCategory", h.UpdateCategory)
		r.Delete("/deleteCategory", h.DeleteCategory)
		r.Post("/addSubCategory", h.AddSubCategory)
		r.Put("/updateSubCategory", h.UpdateSubCategory)
		r.Delete("/deleteSubCategory", h.DeleteSubCategory)
	})
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	titles := collectTitles(req.Title, req.Categories)
	if len(titles) == 0 {
		core.Fail(w, "invalid category payload")
		return
	}

	created, err := h.service.AddCategories(r.Context(), titles)
	if err != nil {
		core.Internal(w, err)
		return
	}

	core.Success(w, "Category(s) created successfully",
		ToCategoryResponses(created))
}

func (h *Handler) AddSubCategory(w http.ResponseWriter, r *http.Request) {
	var req AddSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	titles := collectTitles(req.Title, req.SubCategories)
	if len(titles) == 0 {
		core.Fail(w, "invalid sub-category payload")
		return
	}

	created, err := h.service.AddSubCategories(
		r.Context(), req.CategoryID, titles)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "Category not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "SubCategories created successfully",
		ToSubCategoryResponses(created))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.UpdateCategory(r.Context(), req.CategoryID, req.Title)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "Category not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "Category Update Successfully", req.Title)
}

func (h *Handler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.UpdateSubCategory(
		r.Context(), req.SubCategoryID, req.CategoryID, req.Title)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "sub category not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "sub category updated successfully", SubCategoryResponse{
		ID:         updated.ID,
		CategoryID: updated.CategoryID,
		Title:      updated.Title,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var req DeleteCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.DeleteCategory(r.Context(), req.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "category not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "Category deleted successfully", nil)
}

func (h *Handler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	var req DeleteSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.DeleteSubCategory(r.Context(), req.SubCategoryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "sub-category not found")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "sub-category deleted successfully", nil)
}

func collectTitles(single string, bulk []TitlePayload) []string {
	if len(bulk) > 0 {
		titles := make([]string, 0, len(bulk))
		for _, p := range bulk {
			titles = append(titles, p.Title)
		}
		return titles
	}

	if single != "" {
		return []string{single}
	}

	return nil
}
