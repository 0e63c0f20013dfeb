package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techstore-api/internal/auth"
	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/storefront"
)

var (
	buyer      = &auth.Identity{UserID: "user-1", Email: "buyer@example.com"}
	otherBuyer = &auth.Identity{UserID: "user-2", Email: "other@example.com"}
	admin      = &auth.Identity{UserID: "admin-1", Email: "admin@example.com", IsAdmin: true}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.Banner{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentCapture{},
		&model.WebhookEvent{},
	))

	return db
}

func newOrderService(t *testing.T) (OrderService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	require.NoError(t, productRepo.Seed(context.Background(), []model.Product{
		{ID: "LAP-001", Slug: "laptop", Name: "Laptop", Price: 10000, CountInStock: 5},
		{ID: "NAS-001", Slug: "nas", Name: "NAS", Price: 5000, CountInStock: 0},
	}))

	return NewOrderService(db, orderRepo, productRepo, userRepo), db
}

func checkoutRequest() *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "LAP-001", Qty: 1}},
		ShippingAddress: dto.ShippingAddress{
			FullName: "Jo Buyer", Address: "1 Main St", City: "Harare",
			PostalCode: "0000", Country: "ZW",
		},
		PaymentMethod: model.PaymentMethodPayPal,
		ItemsPrice:    10000,
		TaxPrice:      500,
		ShippingPrice: 0,
		TotalPrice:    10500,
	}
}

func TestOrderService_Create(t *testing.T) {
	svc, _ := newOrderService(t)

	order, err := svc.Create(context.Background(), buyer, checkoutRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(10500), order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.DeliveredAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(10000), order.Items[0].UnitPrice)
}

func TestOrderService_Create_Validation(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	empty := checkoutRequest()
	empty.Items = nil
	_, err := svc.Create(ctx, buyer, empty)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	badMethod := checkoutRequest()
	badMethod.PaymentMethod = "Cheque"
	_, err = svc.Create(ctx, buyer, badMethod)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	unknown := checkoutRequest()
	unknown.Items = []dto.OrderItemRequest{{ProductID: "nope", Qty: 1}}
	_, err = svc.Create(ctx, buyer, unknown)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	outOfStock := checkoutRequest()
	outOfStock.Items = []dto.OrderItemRequest{{ProductID: "NAS-001", Qty: 1}}
	outOfStock.ItemsPrice = 5000
	outOfStock.TotalPrice = 5500
	_, err = svc.Create(ctx, buyer, outOfStock)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	badTotal := checkoutRequest()
	badTotal.TotalPrice = 9999
	_, err = svc.Create(ctx, buyer, badTotal)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	// client-supplied prices are not trusted
	cheap := checkoutRequest()
	cheap.ItemsPrice = 1
	cheap.TotalPrice = 501
	_, err = svc.Create(ctx, buyer, cheap)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)
}

func TestOrderService_SnapshotImmutable(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, buyer, checkoutRequest())
	require.NoError(t, err)

	// a later catalog price change must not affect the placed order
	require.NoError(t, db.Model(&model.Product{}).
		Where("id = ?", "LAP-001").
		Update("price", 99999).Error)

	reloaded, err := svc.Get(ctx, buyer, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, int64(10000), reloaded.Items[0].UnitPrice)
	assert.Equal(t, int64(10500), reloaded.TotalPrice)
}

func TestOrderService_Get_Authorization(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, buyer, checkoutRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, buyer, order.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, admin, order.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, otherBuyer, order.ID)
	assert.ErrorIs(t, err, storefront.ErrForbidden)

	_, err = svc.Get(ctx, buyer, "missing")
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderService_ListScoping(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, buyer, checkoutRequest())
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListMine(ctx, otherBuyer)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.ListAll(ctx, buyer, repository.OrderFilter{})
	assert.ErrorIs(t, err, storefront.ErrForbidden)

	all, err := svc.ListAll(ctx, admin, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrderService_MarkDelivered(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, buyer, checkoutRequest())
	require.NoError(t, err)

	// buyers cannot deliver, not even their own order
	_, err = svc.MarkDelivered(ctx, buyer, order.ID)
	assert.ErrorIs(t, err, storefront.ErrForbidden)

	// delivery does not depend on payment state
	delivered, err := svc.MarkDelivered(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)
	assert.False(t, delivered.IsPaid)

	_, err = svc.MarkDelivered(ctx, admin, order.ID)
	assert.ErrorIs(t, err, storefront.ErrConflict)

	_, err = svc.MarkDelivered(ctx, admin, "missing")
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderService_Summary(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, buyer, checkoutRequest())
	require.NoError(t, err)

	_, err = svc.Summary(ctx, buyer)
	assert.ErrorIs(t, err, storefront.ErrForbidden)

	summary, err := svc.Summary(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.OrdersCount)
	assert.Equal(t, int64(0), summary.TotalSales)
	assert.Empty(t, summary.MonthlySales)

	orderRepo := repository.NewOrderRepository(db)
	require.NoError(t, orderRepo.MarkPaid(ctx, db, order.ID, "cap-1", order.CreatedAt))

	summary, err = svc.Summary(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(10500), summary.TotalSales)
	require.Len(t, summary.MonthlySales, 1)
	assert.Equal(t, int64(10500), summary.MonthlySales[0].Total)
}
