package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techstore-api/internal/auth"
	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/storefront"
)

type OrderService interface {
	Create(ctx context.Context, caller *auth.Identity, req *dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error)
	ListMine(ctx context.Context, caller *auth.Identity) ([]*model.Order, error)
	ListAll(ctx context.Context, caller *auth.Identity, filter repository.OrderFilter) ([]*model.Order, error)
	MarkDelivered(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error)
	Summary(ctx context.Context, caller *auth.Identity) (*dto.SalesSummary, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, caller *auth.Identity, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items: %w", storefront.ErrInvalidInput)
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, storefront.ErrInvalidInput)
	}
	if req.TaxPrice < 0 || req.ShippingPrice < 0 {
		return nil, fmt.Errorf("negative tax or shipping: %w", storefront.ErrInvalidInput)
	}

	productIDs := make([]string, len(req.Items))
	qtyByProduct := make(map[string]int32, len(req.Items))
	for i, item := range req.Items {
		if item.Qty <= 0 {
			return nil, fmt.Errorf("item quantity must be positive: %w", storefront.ErrInvalidInput)
		}
		if _, dup := qtyByProduct[item.ProductID]; dup {
			return nil, fmt.Errorf("duplicate item %s: %w", item.ProductID, storefront.ErrInvalidInput)
		}
		productIDs[i] = item.ProductID
		qtyByProduct[item.ProductID] = item.Qty
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	if len(products) != len(req.Items) {
		return nil, fmt.Errorf("some products not found: %w", storefront.ErrInvalidInput)
	}

	orderID := uuid.NewString()

	// Snapshot the catalog state. Prices come from the catalog, never
	// from the client.
	itemsPrice := int64(0)
	orderItems := make([]*model.OrderItem, len(products))
	for i, product := range products {
		qty := qtyByProduct[product.ID]
		if product.CountInStock < qty {
			return nil, fmt.Errorf("product %s out of stock: %w", product.Slug, storefront.ErrInvalidInput)
		}
		itemsPrice += product.Price * int64(qty)

		orderItems[i] = &model.OrderItem{
			OrderID:   orderID,
			ProductID: product.ID,
			Slug:      product.Slug,
			Name:      product.Name,
			Image:     product.Image,
			Qty:       qty,
			UnitPrice: product.Price,
		}
	}

	if req.ItemsPrice != itemsPrice {
		return nil, fmt.Errorf("items price mismatch: %w", storefront.ErrInvalidInput)
	}
	total := itemsPrice + req.TaxPrice + req.ShippingPrice
	if req.TotalPrice != total {
		return nil, fmt.Errorf("total price mismatch: %w", storefront.ErrInvalidInput)
	}

	order := &model.Order{
		ID:            orderID,
		UserID:        caller.UserID,
		FullName:      req.ShippingAddress.FullName,
		Address:       req.ShippingAddress.Address,
		City:          req.ShippingAddress.City,
		PostalCode:    req.ShippingAddress.PostalCode,
		Country:       req.ShippingAddress.Country,
		PaymentMethod: req.PaymentMethod,
		ItemsPrice:    itemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    total,
		Currency:      "USD",
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = make([]model.OrderItem, len(orderItems))
	for i, item := range orderItems {
		order.Items[i] = *item
	}

	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	return order, nil
}

func (s *orderServiceImpl) ListMine(ctx context.Context, caller *auth.Identity) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, caller.UserID)
}

func (s *orderServiceImpl) ListAll(ctx context.Context, caller *auth.Identity, filter repository.OrderFilter) ([]*model.Order, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	return s.orderRepo.ListAll(ctx, filter)
}

func (s *orderServiceImpl) MarkDelivered(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	if err := s.orderRepo.MarkDelivered(ctx, orderID, time.Now()); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) Summary(ctx context.Context, caller *auth.Identity) (*dto.SalesSummary, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	ordersCount, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	usersCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	productsCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	paid, err := s.orderRepo.ListPaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("list paid orders: %w", err)
	}

	// Bucket in Go so sqlite and mysql behave identically.
	totalSales := int64(0)
	byMonth := make(map[string]int64)
	var months []string
	for _, order := range paid {
		totalSales += order.TotalPrice
		month := order.CreatedAt.Format("2006-01")
		if _, seen := byMonth[month]; !seen {
			months = append(months, month)
		}
		byMonth[month] += order.TotalPrice
	}

	monthly := make([]dto.MonthlySales, len(months))
	for i, month := range months {
		monthly[i] = dto.MonthlySales{Month: month, Total: byMonth[month]}
	}

	return &dto.SalesSummary{
		OrdersCount:   ordersCount,
		UsersCount:    usersCount,
		ProductsCount: productsCount,
		TotalSales:    totalSales,
		MonthlySales:  monthly,
	}, nil
}
