package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"techstore-api/internal/model"
)

// PaymentRepository tracks accepted gateway captures and processed
// webhook events so replays can be rejected.
type PaymentRepository interface {
	CreateCapture(ctx context.Context, tx *gorm.DB, capture *model.PaymentCapture) error
	CaptureExists(ctx context.Context, captureID string) (bool, error)
	EventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) CreateCapture(ctx context.Context, tx *gorm.DB, capture *model.PaymentCapture) error {
	return tx.WithContext(ctx).Create(capture).Error
}

func (r *paymentRepoImpl) CaptureExists(ctx context.Context, captureID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PaymentCapture{}).
		Where("capture_id = ?", captureID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	return r.db.WithContext(ctx).Create(&model.WebhookEvent{
		EventID:     eventID,
		EventType:   eventType,
		ProcessedAt: time.Now(),
	}).Error
}
