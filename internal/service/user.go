package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"techstore-api/internal/auth"
	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/storefront"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	UpdateProfile(ctx context.Context, caller *auth.Identity, req *dto.UpdateProfileRequest) (*model.User, error)
	List(ctx context.Context, caller *auth.Identity) ([]*model.User, error)
	SetAdmin(ctx context.Context, caller *auth.Identity, userID string, isAdmin bool) (*model.User, error)
	Delete(ctx context.Context, caller *auth.Identity, userID string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
}

func NewUserService(userRepo repository.UserRepository, issuer *auth.TokenIssuer) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return nil, fmt.Errorf("name, email and a password of at least 6 characters are required: %w", storefront.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", storefront.ErrConflict)
	} else if !errors.Is(err, storefront.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", storefront.ErrForbidden)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", storefront.ErrForbidden)
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &dto.AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, caller *auth.Identity, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, fmt.Errorf("password too short: %w", storefront.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context, caller *auth.Identity) ([]*model.User, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) SetAdmin(ctx context.Context, caller *auth.Identity, userID string, isAdmin bool) (*model.User, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, caller *auth.Identity, userID string) error {
	if !caller.IsAdmin {
		return storefront.ErrForbidden
	}
	if caller.UserID == userID {
		return fmt.Errorf("cannot delete own account: %w", storefront.ErrInvalidInput)
	}
	return s.userRepo.Delete(ctx, userID)
}
