// AngelaMos | 2026
// entity.go

package staff

import (
	"time"
)

// Staff belongs to exactly one Business user. The (business_id, phone_number)
// pair is unique, enforced here in the registry rather than by a database
// constraint.
type Staff struct {
	ID             string    `db:"id"`
	BusinessID     string    `db:"business_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	PhoneNumber    string    `db:"phone_number"`
	WhatsappNumber *string   `db:"whatsapp_number"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
