package user

import (
	"context"
	"errors"
	"fmt"

	"account-service/internal/logger"
	"account-service/internal/role"

	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, in SignupInput) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	ListUsers(ctx context.Context) ([]UserView, error)
}

type service struct {
	repo   Repository
	roles  role.Repository
	hasher PasswordHasher
}

func NewService(repo Repository, roles role.Repository, hasher PasswordHasher) Service {
	return &service{repo: repo, roles: roles, hasher: hasher}
}

func (s *service) Signup(ctx context.Context, in SignupInput) (User, error) {
	ctx = logger.WithFields(ctx, zap.String("email", in.Email))
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Signup"),
	)

	if err := ValidateSignup(in); err != nil {
		log.Info("signup rejected", zap.Error(err))
		return User{}, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return User{}, err
		}
		log.Error("failed to hash password", zap.Error(err))
		return User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	roleName := in.RoleName
	if roleName == "" {
		roleName = role.Default
	}

	rl, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			log.Warn("signup role not seeded", zap.String("role", roleName))
			return User{}, err
		}
		return User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	u, err := s.repo.Create(ctx, CreateParams{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hashed,
		PhoneNumber:  in.PhoneNumber,
		Country:      in.Country,
		RoleID:       rl.ID,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return User{}, err
		}
		log.Error("failed to create user", zap.Error(err))
		return User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	u.RoleName = rl.Name

	log.Info("signup completed",
		zap.Int("user_id", u.ID),
		zap.String("role", rl.Name),
	)
	return u, nil
}

// Login reports ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *service) Login(ctx context.Context, email, password string) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login failed: email not found")
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if !s.hasher.Check(password, u.Password) {
		log.Info("login failed: password mismatch", zap.Int("user_id", u.ID))
		return User{}, ErrInvalidCredentials
	}

	log.Info("login succeeded", zap.Int("user_id", u.ID))
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.ListWithRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return users, nil
}
