package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"techstore-api/internal/model"
	"techstore-api/internal/storefront"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Paid      *bool
	Delivered *bool
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]*model.Order, error)
	SetGatewayRef(ctx context.Context, orderID, ref string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID string, paidAt time.Time) error
	MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) error
	Count(ctx context.Context) (int64, error)
	ListPaid(ctx context.Context) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storefront.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context, filter OrderFilter) ([]*model.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if filter.Paid != nil {
		q = q.Where("is_paid = ?", *filter.Paid)
	}
	if filter.Delivered != nil {
		q = q.Where("is_delivered = ?", *filter.Delivered)
	}

	var orders []*model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) SetGatewayRef(ctx context.Context, orderID, ref string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("gateway_ref", ref)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storefront.ErrNotFound
	}
	return nil
}

// MarkPaid is the single paid transition. The conditional update
// serializes duplicate gateway callbacks: the second caller matches zero
// rows and gets ErrConflict.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID string, paidAt time.Time) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_paid":    true,
			"paid_at":    paidAt,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.transitionMiss(ctx, orderID)
	}
	return nil
}

func (r *orderRepoImpl) MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND is_delivered = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_delivered": true,
			"delivered_at": deliveredAt,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.transitionMiss(ctx, orderID)
	}
	return nil
}

// transitionMiss decides whether a zero-row conditional update means the
// order is missing or the transition already happened.
func (r *orderRepoImpl) transitionMiss(ctx context.Context, orderID string) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return storefront.ErrNotFound
	}
	return storefront.ErrConflict
}

func (r *orderRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) ListPaid(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("is_paid = ?", true).
		Order("created_at ASC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
