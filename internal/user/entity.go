// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Email        *string    `db:"email"`
	PhoneNumber  string     `db:"phone_number"`
	Role         string     `db:"role"`
	OTPHash      *string    `db:"otp_hash"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) IsBusiness() bool {
	return u.Role == RoleBusiness
}

const (
	RoleIndividual = "Individual"
	RoleBusiness   = "Business"
)
