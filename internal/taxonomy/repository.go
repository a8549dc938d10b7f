// AngelaMos | 2026
// repository.go

package taxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bazario/bazario-api/internal/core"
)

type Repository interface {
	CreateCategories(ctx context.Context, categories []Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id, title string) error
	DeleteCategory(ctx context.Context, id string) error

	CreateSubCategories(ctx context.Context, subs []SubCategory) error
	GetSubCategory(ctx context.Context, id string) (*SubCategory, error)
	UpdateSubCategory(
		ctx context.Context,
		id, categoryID, title string,
	) error
	DeleteSubCategory(ctx context.Context, id string) error

	SubCategoryBelongsTo(
		ctx context.Context,
		subCategoryID, categoryID string,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategories(
	ctx context.Context,
	categories []Category,
) error {
	if len(categories) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(categories))
	args := make([]any, 0, len(categories)*2)
	for i, c := range categories {
		placeholders = append(placeholders,
			fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, c.ID, c.Title)
	}

	query := `INSERT INTO categories (id, title) VALUES ` +
		strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create categories: %w", err)
	}

	return nil
}

func (r *repository) GetCategory(
	ctx context.Context,
	id string,
) (*Category, error) {
	query := `
		SELECT id, title, created_at, updated_at
		FROM categories
		WHERE id = $1`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *repository) UpdateCategory(
	ctx context.Context,
	id, title string,
) error {
	query := `
		UPDATE categories
		SET title = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, title)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	return requireRowsAffected(result, "update category")
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return requireRowsAffected(result, "delete category")
}

func (r *repository) CreateSubCategories(
	ctx context.Context,
	subs []SubCategory,
) error {
	if len(subs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(subs))
	args := make([]any, 0, len(subs)*3)
	for i, s := range subs {
		placeholders = append(placeholders,
			fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		args = append(args, s.ID, s.CategoryID, s.Title)
	}

	query := `INSERT INTO sub_categories (id, category_id, title) VALUES ` +
		strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create sub-categories: %w", err)
	}

	return nil
}

func (r *repository) GetSubCategory(
	ctx context.Context,
	id string,
) (*SubCategory, error) {
	query := `
		SELECT id, category_id, title, created_at, updated_at
		FROM sub_categories
		WHERE id = $1`

	var sub SubCategory
	err := r.db.GetContext(ctx, &sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get sub-category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get sub-category: %w", err)
	}

	return &sub, nil
}

func (r *repository) UpdateSubCategory(
	ctx context.Context,
	id, categoryID, title string,
) error {
	query := `
		UPDATE sub_categories
		SET category_id = $2, title = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, categoryID, title)
	if err != nil {
		return fmt.Errorf("update sub-category: %w", err)
	}

	return requireRowsAffected(result, "update sub-category")
}

func (r *repository) DeleteSubCategory(
	ctx context.Context,
	id string,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sub-category: %w", err)
	}

	return requireRowsAffected(result, "delete sub-category")
}

func (r *repository) SubCategoryBelongsTo(
	ctx context.Context,
	subCategoryID, categoryID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sub_categories
			WHERE id = $1 AND category_id = $2
		)`

	var ok bool
	err := r.db.GetContext(ctx, &ok, query, subCategoryID, categoryID)
	if err != nil {
		return false, fmt.Errorf("check sub-category parent: %w", err)
	}

	return ok, nil
}

func requireRowsAffected(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
