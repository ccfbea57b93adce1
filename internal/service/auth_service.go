package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
)

// ErrAdminExists is returned by CreateAdmin once any user exists.
var ErrAdminExists = apperrors.New(apperrors.ErrForbidden, "Admin user already exists")

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateAdminInput is the body of the first-run bootstrap request.
type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AuthService handles login and first-run bootstrap.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Identify(ctx context.Context, userID string) (*model.User, error)
	CreateAdmin(ctx context.Context, email, password string) (*model.User, error)
	EnsureBootstrapAdmin(ctx context.Context, email, password string) (bool, error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	hasher *auth.PasswordHasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, hasher *auth.PasswordHasher) AuthService {
	return &authService{
		users:  users,
		jwt:    jwtService,
		hasher: hasher,
	}
}

// Login authenticates a user and returns a session token. Unknown emails and
// wrong passwords fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("find user: %w", err)
		}
		s.hasher.VerifyNothing(password)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Identify loads the user a verified token was issued to. A user deleted since
// issuance is unauthenticated.
func (s *authService) Identify(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// CreateAdmin creates the first ADMIN. It is refused once any user exists.
func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*model.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: model.NormalizeEmail(email), Password: hashed, Role: model.RoleAdmin}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}

// EnsureBootstrapAdmin creates the configured admin on an empty store and
// reports whether it did.
func (s *authService) EnsureBootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.CreateAdmin(ctx, email, password)
	if errors.Is(err, ErrAdminExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
