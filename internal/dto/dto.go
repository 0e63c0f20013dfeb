package dto

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreateOrderRequest is the checkout submission. All amounts are cents;
// the server recomputes item prices from the catalog and validates the
// client totals against them.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	ItemsPrice      int64              `json:"items_price"`
	TaxPrice        int64              `json:"tax_price"`
	ShippingPrice   int64              `json:"shipping_price"`
	TotalPrice      int64              `json:"total_price"`
}

type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// PaymentHandle is the client-side session for a gateway-routed payment.
type PaymentHandle struct {
	OrderID     string `json:"order_id"`
	Gateway     string `json:"gateway"`
	GatewayRef  string `json:"gateway_ref"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type CapturePaypalRequest struct {
	GatewayOrderID string `json:"gateway_order_id"`
}

type ChargeCardRequest struct {
	Nonce string `json:"nonce"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type ProductRequest struct {
	Part         string `json:"part"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Brand        string `json:"brand"`
	Image        string `json:"image"`
	Price        int64  `json:"price"`
	CountInStock int32  `json:"count_in_stock"`
	Description  string `json:"description"`
	IsFeatured   bool   `json:"is_featured"`
}

type BannerRequest struct {
	Image    string `json:"image"`
	Link     string `json:"link"`
	IsActive bool   `json:"is_active"`
}

type UpdateUserRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// SalesSummary feeds the admin dashboard charts.
type SalesSummary struct {
	OrdersCount   int64          `json:"orders_count"`
	UsersCount    int64          `json:"users_count"`
	ProductsCount int64          `json:"products_count"`
	TotalSales    int64          `json:"total_sales"` // cents, paid orders only
	MonthlySales  []MonthlySales `json:"monthly_sales"`
}

type MonthlySales struct {
	Month string `json:"month"` // YYYY-MM
	Total int64  `json:"total"` // cents
}
