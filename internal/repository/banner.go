package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"techstore-api/internal/model"
	"techstore-api/internal/storefront"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *model.Banner) error
	FindByID(ctx context.Context, bannerID string) (*model.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Banner, error)
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, bannerID string) error
}

type bannerRepoImpl struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepoImpl{
		db: db,
	}
}

func (r *bannerRepoImpl) Create(ctx context.Context, banner *model.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepoImpl) FindByID(ctx context.Context, bannerID string) (*model.Banner, error) {
	var banner model.Banner
	err := r.db.WithContext(ctx).
		Where("id = ?", bannerID).
		First(&banner).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storefront.ErrNotFound
		}
		return nil, err
	}

	return &banner, nil
}

func (r *bannerRepoImpl) List(ctx context.Context, activeOnly bool) ([]*model.Banner, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var banners []*model.Banner
	if err := q.Find(&banners).Error; err != nil {
		return nil, err
	}

	return banners, nil
}

func (r *bannerRepoImpl) Update(ctx context.Context, banner *model.Banner) error {
	result := r.db.WithContext(ctx).Model(&model.Banner{}).
		Where("id = ?", banner.ID).
		Updates(map[string]interface{}{
			"image":     banner.Image,
			"link":      banner.Link,
			"is_active": banner.IsActive,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storefront.ErrNotFound
	}
	return nil
}

func (r *bannerRepoImpl) Delete(ctx context.Context, bannerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", bannerID).
		Delete(&model.Banner{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storefront.ErrNotFound
	}
	return nil
}
