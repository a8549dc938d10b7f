// AngelaMos | 2026
// service.go

package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bazario/bazario-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddCategories creates one or more categories from the trimmed titles.
// Titles are not deduplicated: the catalog permits duplicate names.
func (s *Service) AddCategories(
	ctx context.Context,
	titles []string,
) ([]Category, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("add categories: %w", core.ErrInvalidInput)
	}

	categories := make([]Category, 0, len(titles))
	for _, title := range titles {
		categories = append(categories, Category{
			ID:    uuid.New().String(),
			Title: strings.TrimSpace(title),
		})
	}

	if err := s.repo.CreateCategories(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (s *Service) AddSubCategories(
	ctx context.Context,
	categoryID string,
	titles []string,
) ([]SubCategory, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("add sub-categories: %w", core.ErrInvalidInput)
	}

	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	subs := make([]SubCategory, 0, len(titles))
	for _, title := range titles {
		subs = append(subs, SubCategory{
			ID:         uuid.New().String(),
			CategoryID: categoryID,
			Title:      strings.TrimSpace(title),
		})
	}

	if err := s.repo.CreateSubCategories(ctx, subs); err != nil {
		return nil, err
	}

	return subs, nil
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	id, title string,
) error {
	return s.repo.UpdateCategory(ctx, id, strings.TrimSpace(title))
}

// UpdateSubCategory may re-parent the sub-category to a different category.
func (s *Service) UpdateSubCategory(
	ctx context.Context,
	id, categoryID, title string,
) (*SubCategory, error) {
	if _, err := s.repo.GetSubCategory(ctx, id); err != nil {
		return nil, err
	}

	err := s.repo.UpdateSubCategory(ctx, id, categoryID, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}

	return s.repo.GetSubCategory(ctx, id)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) DeleteSubCategory(ctx context.Context, id string) error {
	return s.repo.DeleteSubCategory(ctx, id)
}

// SubCategoryBelongsTo reports whether the sub-category exists under the
// given category. The listing engine consults this before persisting a
// classification pair.
func (s *Service) SubCategoryBelongsTo(
	ctx context.Context,
	subCategoryID, categoryID string,
) (bool, error) {
	return s.repo.SubCategoryBelongsTo(ctx, subCategoryID, categoryID)
}
