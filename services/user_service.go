package services

import (
	"context"
	"strings"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	ListUsers(ctx context.Context, principal models.Principal) ([]models.User, error)
	CreateUser(ctx context.Context, principal models.Principal, req models.CreateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, principal models.Principal, id string) error
	UpdatePermissions(ctx context.Context, principal models.Principal, id string, req models.UpdatePermissionsRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	cache    ProductCache
}

func NewUserService(userRepo repositories.UserRepository, cache ProductCache) UserService {
	if cache == nil {
		cache = NoopProductCache{}
	}
	return &userService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// guardTarget rejects the reserved account and the caller's own account.
func guardTarget(principal models.Principal, id string) error {
	if id == models.SuperAdminID {
		return models.ErrorForbidden{Message: "the super admin account cannot be modified"}
	}
	if id == principal.UserID {
		return models.ErrorForbidden{Message: "you cannot modify your own account"}
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, principal models.Principal) ([]models.User, error) {
	if err := requireSuperAdmin(principal); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *userService) CreateUser(ctx context.Context, principal models.Principal, req models.CreateUserRequest) (*models.User, error) {
	if err := requireSuperAdmin(principal); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == models.RoleSuperAdmin {
		return nil, models.ErrorValidation{Message: "role super_admin cannot be assigned"}
	}

	perms, err := models.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == models.SuperAdminID {
		return nil, models.ErrorConflict{Message: "username is reserved"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to hash password", Err: err}
	}

	user := &models.User{
		ID:           username,
		Username:     models.StringPtr(username),
		Email:        models.StringPtr(strings.ToLower(strings.TrimSpace(req.Email))),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         role,
		IsVerified:   true,
		Permissions:  perms.Strings(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, principal models.Principal, id string) error {
	if err := requireSuperAdmin(principal); err != nil {
		return err
	}
	if err := guardTarget(principal, id); err != nil {
		return err
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	logger.Info(ctx, "user deleted with owned content", zap.String("user_id", id))
	return nil
}

func (s *userService) UpdatePermissions(ctx context.Context, principal models.Principal, id string, req models.UpdatePermissionsRequest) (*models.User, error) {
	if err := requireSuperAdmin(principal); err != nil {
		return nil, err
	}
	if err := guardTarget(principal, id); err != nil {
		return nil, err
	}

	perms, err := models.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePermissions(ctx, id, perms.Strings()); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}
