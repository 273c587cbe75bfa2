package transport

import (
	"time"

	"github.com/Skotchmaster/inventory_api/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProfileResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

// PatchProfileRequest touches only the fields that were sent. is_staff is
// deliberately not bindable.
type PatchProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type CreateProductRequest struct {
	Name          string   `json:"name"           validate:"required"`
	Description   string   `json:"description"    validate:"required"`
	Price         *float64 `json:"price"          validate:"required,gte=0"`
	Category      string   `json:"category"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	ImageURL      string   `json:"image_url"      validate:"omitempty,url"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"           validate:"omitempty,min=1"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"          validate:"omitempty,gte=0"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"image_url"      validate:"omitempty,url"`
}

type ProductResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	Category          string    `json:"category"`
	StockQuantity     int       `json:"stock_quantity"`
	ImageURL          string    `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedByUsername string    `json:"created_by_username"`
}

func ToProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Creator != nil {
		resp.CreatedByUsername = p.Creator.Username
	}
	return resp
}

func ToProductResponses(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i := range items {
		out[i] = ToProductResponse(&items[i])
	}
	return out
}

func ToProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
	}
}
