package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"techstore-api/internal/model"
	"techstore-api/internal/storefront"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Brand    string
	Query    string
	Featured *bool
}

type ProductRepository interface {
	Seed(ctx context.Context, products []model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error
	Count(ctx context.Context) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storefront.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storefront.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter ProductFilter) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.Query != "" {
		q = q.Where("name LIKE ?", "%"+filter.Query+"%")
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}

	var products []*model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"part":           product.Part,
			"slug":           product.Slug,
			"name":           product.Name,
			"category":       product.Category,
			"brand":          product.Brand,
			"image":          product.Image,
			"price":          product.Price,
			"count_in_stock": product.CountInStock,
			"description":    product.Description,
			"is_featured":    product.IsFeatured,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storefront.ErrNotFound
	}
	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storefront.ErrNotFound
	}
	return nil
}

func (r *productRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
