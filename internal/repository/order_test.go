package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techstore-api/internal/model"
	"techstore-api/internal/storefront"
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

func seedOrder(t *testing.T, db *gorm.DB, repo OrderRepository, id, userID string) *model.Order {
	t.Helper()

	order := &model.Order{
		ID:            id,
		UserID:        userID,
		FullName:      "Jo Buyer",
		Address:       "1 Main St",
		PaymentMethod: model.PaymentMethodPayPal,
		ItemsPrice:    10000,
		TaxPrice:      500,
		TotalPrice:    10500,
		Currency:      "USD",
	}
	require.NoError(t, repo.Create(context.Background(), db, order))
	require.NoError(t, repo.CreateItems(context.Background(), db, []*model.OrderItem{
		{OrderID: id, ProductID: "LAP-001", Slug: "laptop", Name: "Laptop", Qty: 1, UnitPrice: 10000},
	}))
	return order
}

func TestOrderRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Len(t, order.Items, 1)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderRepository_MarkPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")

	paidAt := time.Now()
	require.NoError(t, repo.MarkPaid(context.Background(), db, "order-1", "cap-1", paidAt))

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, "cap-1", order.PaymentID)

	// second transition is a conflict and leaves paid_at untouched
	firstPaidAt := *order.PaidAt
	err = repo.MarkPaid(context.Background(), db, "order-1", "cap-2", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, storefront.ErrConflict)

	order, err = repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, firstPaidAt.Unix(), order.PaidAt.Unix())
	assert.Equal(t, "cap-1", order.PaymentID)

	err = repo.MarkPaid(context.Background(), db, "missing", "cap-3", time.Now())
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderRepository_MarkPaid_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.MarkPaid(context.Background(), db, "order-1", "cap-1", time.Now())
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, storefront.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
}

func TestOrderRepository_MarkDelivered(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")

	require.NoError(t, repo.MarkDelivered(context.Background(), "order-1", time.Now()))

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	firstDeliveredAt := *order.DeliveredAt

	err = repo.MarkDelivered(context.Background(), "order-1", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, storefront.ErrConflict)

	order, err = repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, firstDeliveredAt.Unix(), order.DeliveredAt.Unix())

	err = repo.MarkDelivered(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderRepository_ListAll_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")
	seedOrder(t, db, repo, "order-2", "user-2")
	require.NoError(t, repo.MarkPaid(context.Background(), db, "order-2", "cap-1", time.Now()))

	paid := true
	orders, err := repo.ListAll(context.Background(), OrderFilter{Paid: &paid})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-2", orders[0].ID)

	unpaid := false
	orders, err = repo.ListAll(context.Background(), OrderFilter{Paid: &unpaid})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)

	orders, err = repo.ListAll(context.Background(), OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedOrder(t, db, repo, "order-1", "user-1")
	seedOrder(t, db, repo, "order-2", "user-2")

	orders, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
}
