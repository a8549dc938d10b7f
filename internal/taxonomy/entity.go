// AngelaMos | 2026
// entity.go

package taxonomy

import (
	"time"
)

// Category titles are not unique: the catalog tolerates duplicates and the
// admin surface is expected to curate them.
type Category struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SubCategory struct {
	ID         string    `db:"id"`
	CategoryID string    `db:"category_id"`
	Title      string    `db:"title"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
