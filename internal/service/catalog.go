package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"techstore-api/internal/auth"
	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/storefront"
)

type CatalogService interface {
	List(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Create(ctx context.Context, caller *auth.Identity, req *dto.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, caller *auth.Identity, productID string, req *dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, caller *auth.Identity, productID string) error
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

func (s *catalogServiceImpl) Create(ctx context.Context, caller *auth.Identity, req *dto.ProductRequest) (*model.Product, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	if req.Name == "" || req.Slug == "" {
		return nil, fmt.Errorf("name and slug are required: %w", storefront.ErrInvalidInput)
	}
	if req.Price < 0 || req.CountInStock < 0 {
		return nil, fmt.Errorf("negative price or stock: %w", storefront.ErrInvalidInput)
	}

	product := &model.Product{
		ID:           uuid.NewString(),
		Part:         req.Part,
		Slug:         req.Slug,
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		Image:        req.Image,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Description:  req.Description,
		IsFeatured:   req.IsFeatured,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) Update(ctx context.Context, caller *auth.Identity, productID string, req *dto.ProductRequest) (*model.Product, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	if req.Price < 0 || req.CountInStock < 0 {
		return nil, fmt.Errorf("negative price or stock: %w", storefront.ErrInvalidInput)
	}

	product := &model.Product{
		ID:           productID,
		Part:         req.Part,
		Slug:         req.Slug,
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		Image:        req.Image,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Description:  req.Description,
		IsFeatured:   req.IsFeatured,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) Delete(ctx context.Context, caller *auth.Identity, productID string) error {
	if !caller.IsAdmin {
		return storefront.ErrForbidden
	}
	return s.productRepo.Delete(ctx, productID)
}
