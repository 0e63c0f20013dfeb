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

type BannerService interface {
	ListActive(ctx context.Context) ([]*model.Banner, error)
	ListAll(ctx context.Context, caller *auth.Identity) ([]*model.Banner, error)
	Create(ctx context.Context, caller *auth.Identity, req *dto.BannerRequest) (*model.Banner, error)
	Update(ctx context.Context, caller *auth.Identity, bannerID string, req *dto.BannerRequest) (*model.Banner, error)
	Delete(ctx context.Context, caller *auth.Identity, bannerID string) error
}

type bannerServiceImpl struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) BannerService {
	return &bannerServiceImpl{
		bannerRepo: bannerRepo,
	}
}

func (s *bannerServiceImpl) ListActive(ctx context.Context) ([]*model.Banner, error) {
	return s.bannerRepo.List(ctx, true)
}

func (s *bannerServiceImpl) ListAll(ctx context.Context, caller *auth.Identity) ([]*model.Banner, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	return s.bannerRepo.List(ctx, false)
}

func (s *bannerServiceImpl) Create(ctx context.Context, caller *auth.Identity, req *dto.BannerRequest) (*model.Banner, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	if req.Image == "" {
		return nil, fmt.Errorf("banner image is required: %w", storefront.ErrInvalidInput)
	}

	banner := &model.Banner{
		ID:       uuid.NewString(),
		Image:    req.Image,
		Link:     req.Link,
		IsActive: req.IsActive,
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}

	return banner, nil
}

func (s *bannerServiceImpl) Update(ctx context.Context, caller *auth.Identity, bannerID string, req *dto.BannerRequest) (*model.Banner, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	banner := &model.Banner{
		ID:       bannerID,
		Image:    req.Image,
		Link:     req.Link,
		IsActive: req.IsActive,
	}

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, err
	}

	return s.bannerRepo.FindByID(ctx, bannerID)
}

func (s *bannerServiceImpl) Delete(ctx context.Context, caller *auth.Identity, bannerID string) error {
	if !caller.IsAdmin {
		return storefront.ErrForbidden
	}
	return s.bannerRepo.Delete(ctx, bannerID)
}
