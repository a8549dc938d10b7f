// AngelaMos | 2026
// dto.go

package listing

import (
	"time"
)

type CreateListingRequest struct {
	CategoryID    string   `json:"category_id"     validate:"required,uuid"`
	SubCategoryID string   `json:"sub_category_id" validate:"required,uuid"`
	Title         string   `json:"title"           validate:"required,min=3,max=100"`
	Currency      string   `json:"currency"        validate:"required,min=1,max=8"`
	Price         float64  `json:"price"           validate:"required,gt=0"`
	Location      string   `json:"location"        validate:"required,min=3,max=100"`
	ItemCondition string   `json:"item_condition"  validate:"required,oneof=New Used"`
	Description   string   `json:"description"     validate:"omitempty,min=10,max=1000"`
	StaffIDs      []string `json:"staff_id"        validate:"omitempty,dive,uuid"`
}

// EditListingRequest carries optional scalar fields; nil leaves the stored
// value untouched. StaffIDs, when present, is a union request: new mappings
// are added, existing ones are never removed here.
type EditListingRequest struct {
	CategoryID    *string  `json:"category_id"     validate:"omitempty,uuid"`
	SubCategoryID *string  `json:"sub_category_id" validate:"omitempty,uuid"`
	Title         *string  `json:"title"           validate:"omitempty,min=3,max=100"`
	Currency      *string  `json:"currency"        validate:"omitempty,min=1,max=8"`
	Price         *float64 `json:"price"           validate:"omitempty,gt=0"`
	Location      *string  `json:"location"        validate:"omitempty,min=3,max=100"`
	ItemCondition *string  `json:"item_condition"  validate:"omitempty,oneof=New Used"`
	Description   *string  `json:"description"     validate:"omitempty,min=10,max=1000"`
	StaffIDs      []string `json:"staff_id"        validate:"omitempty,dive,uuid"`
}

type PhotoResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

type StaffInfoResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type ListingResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	CategoryID    string              `json:"category_id"`
	SubCategoryID string              `json:"sub_category_id"`
	Title         string              `json:"title"`
	Currency      string              `json:"currency"`
	Price         float64             `json:"price"`
	Location      string              `json:"location"`
	ItemCondition string              `json:"item_condition"`
	Description   *string             `json:"description,omitempty"`
	IsBusiness    bool                `json:"is_business"`
	CreatedAt     time.Time           `json:"created_at"`
	Photos        []PhotoResponse     `json:"photos,omitempty"`
	Staff         []StaffInfoResponse `json:"staff,omitempty"`
	IsFavourite   *bool               `json:"is_favourite,omitempty"`
}

type FeedResponse struct {
	Listings []ListingResponse `json:"listings"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Total    int               `json:"total"`
}

func ToListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		CategoryID:    l.CategoryID,
		SubCategoryID: l.SubCategoryID,
		Title:         l.Title,
		Currency:      l.Currency,
		Price:         l.Price,
		Location:      l.Location,
		ItemCondition: l.ItemCondition,
		Description:   l.Description,
		IsBusiness:    l.IsBusiness,
		CreatedAt:     l.CreatedAt,
	}
}
