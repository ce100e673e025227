package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// UserService handles franchisee account administration.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// CreateFranchisee provisions a franchisee login account. Admin only.
func (s *UserService) CreateFranchisee(ctx context.Context, actor authz.Actor, req model.CreateFranchiseeRequest) (*model.User, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         model.RoleFranchisee,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("Franchisee account created")
	return user, nil
}

// ListFranchisees retrieves all franchisee accounts. Admin only.
func (s *UserService) ListFranchisees(ctx context.Context, actor authz.Actor) ([]model.User, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListByRole(ctx, model.RoleFranchisee)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
