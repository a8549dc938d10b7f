// AngelaMos | 2026
// repository.go

package favourite

import (
	"context"
	"fmt"

	"github.com/bazario/bazario-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, f *Favourite) error
	ListingIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Favourite) error {
	query := `
		INSERT INTO favourites (id, user_id, listing_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, f, query, f.ID, f.UserID, f.ListingID)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create favourite: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create favourite: %w", err)
	}

	return nil
}

func (r *repository) ListingIDsByUser(
	ctx context.Context,
	userID string,
) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT listing_id FROM favourites WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}

	return ids, nil
}
