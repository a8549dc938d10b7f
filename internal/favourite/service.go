// AngelaMos | 2026
// service.go

package favourite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bazario/bazario-api/internal/core"
)

// ListingChecker confirms a listing exists before it can be bookmarked.
// Satisfied by the listing service, wired in main.
type ListingChecker interface {
	ListingExists(ctx context.Context, listingID string) (bool, error)
}

type Service struct {
	repo     Repository
	listings ListingChecker
}

func NewService(repo Repository, listings ListingChecker) *Service {
	return &Service{repo: repo, listings: listings}
}

// AddFavourite bookmarks the listing for the user. There is no remove
// operation on the current API surface.
func (s *Service) AddFavourite(
	ctx context.Context,
	userID, listingID string,
) (*Favourite, error) {
	exists, err := s.listings.ListingExists(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("add favourite: %w", core.ErrNotFound)
	}

	fav := &Favourite{
		ID:        uuid.New().String(),
		UserID:    userID,
		ListingID: listingID,
	}

	if err := s.repo.Create(ctx, fav); err != nil {
		return nil, err
	}

	return fav, nil
}

// FavouriteListingIDs returns the user's bookmarked listing ids as a set,
// shaped for feed decoration.
func (s *Service) FavouriteListingIDs(
	ctx context.Context,
	userID string,
) (map[string]struct{}, error) {
	ids, err := s.repo.ListingIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}
