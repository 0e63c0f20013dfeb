package model

import "time"

type Product struct {
	ID           string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Part         string  `gorm:"size:32;index" json:"part,omitempty"` // manufacturer part number
	Slug         string  `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Name         string  `gorm:"size:256;not null" json:"name"`
	Category     string  `gorm:"size:128;index" json:"category,omitempty"`
	Brand        string  `gorm:"size:64;index" json:"brand,omitempty"`
	Image        string  `gorm:"size:256" json:"image,omitempty"`
	Price        int64   `gorm:"not null" json:"price"` // cents
	Rating       float64 `json:"rating"`
	NumReviews   int32   `json:"num_reviews"`
	CountInStock int32   `gorm:"not null" json:"count_in_stock"`
	Description  string  `gorm:"type:text" json:"description,omitempty"`
	IsFeatured   bool    `gorm:"not null;default:false" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:256;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Banner struct {
	ID       string `gorm:"primaryKey;size:64;not null" json:"id"`
	Image    string `gorm:"size:256;not null" json:"image"`
	Link     string `gorm:"size:256" json:"link,omitempty"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentCapture records every gateway capture we accepted, keyed by the
// gateway's capture/transaction id so replays are detectable.
type PaymentCapture struct {
	CaptureID string `gorm:"primaryKey;size:128;not null"`
	OrderID   string `gorm:"size:64;index;not null"`
	Gateway   string `gorm:"size:32;not null"`
	Amount    int64  `gorm:"not null"` // cents
	Currency  string `gorm:"size:8;not null"`
	CreatedAt time.Time
}

// WebhookEvent marks gateway-initiated notifications as processed.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
