// AngelaMos | 2026
// entity.go

package favourite

import (
	"time"
)

// Favourite bookmarks one listing for one user; the pair is unique.
type Favourite struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ListingID string    `db:"listing_id"`
	CreatedAt time.Time `db:"created_at"`
}
