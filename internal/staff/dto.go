// AngelaMos | 2026
// dto.go

package staff

import (
	"time"
)

type AddStaffRequest struct {
	Name           string `json:"name"            validate:"required,min=3,max=50"`
	Email          string `json:"email"           validate:"required,email,max=255"`
	PhoneNumber    string `json:"phone_number"    validate:"required,len=10,numeric"`
	WhatsappNumber string `json:"whatsapp_number" validate:"omitempty,len=10,numeric"`
}

// EditStaffRequest carries optional fields: nil means "leave untouched",
// a present value (including empty whatsapp) means "set".
type EditStaffRequest struct {
	Name           *string `json:"name"            validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email"           validate:"omitempty,email,max=255"`
	PhoneNumber    *string `json:"phone_number"    validate:"omitempty,len=10,numeric"`
	WhatsappNumber *string `json:"whatsapp_number" validate:"omitempty,len=10,numeric"`
}

type StaffResponse struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	WhatsappNumber *string   `json:"whatsapp_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToStaffResponse(s *Staff) StaffResponse {
	return StaffResponse{
		ID:             s.ID,
		BusinessID:     s.BusinessID,
		Name:           s.Name,
		Email:          s.Email,
		PhoneNumber:    s.PhoneNumber,
		WhatsappNumber: s.WhatsappNumber,
		CreatedAt:      s.CreatedAt,
	}
}

func ToStaffResponses(list []Staff) []StaffResponse {
	out := make([]StaffResponse, 0, len(list))
	for i := range list {
		out = append(out, ToStaffResponse(&list[i]))
	}
	return out
}
