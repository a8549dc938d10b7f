// AngelaMos | 2026
// dto.go

package taxonomy

// TitlePayload is one entry of a bulk create request.
type TitlePayload struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

// AddCategoryRequest accepts either a single title or a bulk list; at least
// one of the two must be present.
type AddCategoryRequest struct {
	Title      string         `json:"title" validate:"omitempty,min=1,max=100"`
	Categories []TitlePayload `json:"categories" validate:"omitempty,dive"`
}

type AddSubCategoryRequest struct {
	CategoryID    string         `json:"category_id" validate:"required,uuid"`
	Title         string         `json:"title" validate:"omitempty,min=1,max=100"`
	SubCategories []TitlePayload `json:"subcategories" validate:"omitempty,dive"`
}

type UpdateCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,min=1,max=100"`
}

type UpdateSubCategoryRequest struct {
	SubCategoryID string `json:"sub_category_id" validate:"required,uuid"`
	CategoryID    string `json:"category_id" validate:"required,uuid"`
	Title         string `json:"title" validate:"required,min=1,max=100"`
}

type DeleteCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

type DeleteSubCategoryRequest struct {
	SubCategoryID string `json:"sub_category_id" validate:"required,uuid"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SubCategoryResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
}

func ToCategoryResponses(categories []Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Title: c.Title})
	}
	return out
}

func ToSubCategoryResponses(subs []SubCategory) []SubCategoryResponse {
	out := make([]SubCategoryResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubCategoryResponse{
			ID:         s.ID,
			CategoryID: s.CategoryID,
			Title:      s.Title,
		})
	}
	return out
}
