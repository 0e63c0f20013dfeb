package model

import "time"

// Payment methods a buyer can choose at checkout.
const (
	PaymentMethodPayPal = "PayPal"
	PaymentMethodPaynow = "Paynow"
	PaymentMethodCard   = "Card"
	PaymentMethodCash   = "CashOnDelivery"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodPaynow, PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"user_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	// shipping address, free-text
	FullName   string `gorm:"size:128;not null" json:"full_name"`
	Address    string `gorm:"size:256;not null" json:"address"`
	City       string `gorm:"size:128" json:"city"`
	PostalCode string `gorm:"size:32" json:"postal_code"`
	Country    string `gorm:"size:64" json:"country"`

	PaymentMethod string `gorm:"size:32;not null" json:"payment_method"`

	// amounts in cents
	ItemsPrice    int64  `gorm:"not null" json:"items_price"`
	TaxPrice      int64  `gorm:"not null" json:"tax_price"`
	ShippingPrice int64  `gorm:"not null" json:"shipping_price"`
	TotalPrice    int64  `gorm:"not null" json:"total_price"`
	Currency      string `gorm:"size:8;not null" json:"currency"`

	// gateway correlation: paypal order id or paynow poll url
	GatewayRef string `gorm:"size:512;index" json:"-"`
	// gateway capture / transaction id once paid
	PaymentID string `gorm:"size:128" json:"payment_id,omitempty"`

	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a snapshot of the product at purchase time. Later catalog
// edits do not touch it.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   string `gorm:"size:64;index;not null" json:"-"`
	ProductID string `gorm:"size:64;index;not null" json:"product_id"`
	Slug      string `gorm:"size:128;not null" json:"slug"`
	Name      string `gorm:"size:256;not null" json:"name"`
	Image     string `gorm:"size:256" json:"image,omitempty"`
	Qty       int32  `gorm:"not null" json:"qty"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"` // cents

	CreatedAt time.Time `json:"-"`
}
