package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"not null"                 json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsStaff      bool      `gorm:"not null;default:false"   json:"is_staff"`
	Products     []Product `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name          string    `gorm:"not null"                    json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null;type:decimal(10,2)" json:"price"`
	Category      string    `json:"category"`
	StockQuantity int       `gorm:"not null;default:0"          json:"stock_quantity"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedByID   uint      `gorm:"index;not null"              json:"-"`
	Creator       *User     `gorm:"foreignKey:CreatedByID"      json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthToken is the opaque bearer credential. One row per user, created on
// first login and returned unchanged on every login after that.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
