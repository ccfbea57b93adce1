package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
)

// Pagination bounds for user listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200

	// DefaultAuditLimit caps audit trail reads.
	DefaultAuditLimit = 100
	MaxAuditLimit     = 500
)

// ListUsersQuery selects one page of users.
type ListUsersQuery struct {
	Page     int
	PageSize int
	Search   string
}

// UserPage is one page of sanitized users.
type UserPage struct {
	Users    []model.User `json:"users"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

// CreateUserInput is the body of a user create request.
type CreateUserInput struct {
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     *model.Role `json:"role" validate:"omitempty,enum"`
}

// UpdateUserInput is the body of a user update request. Omitted fields stay unchanged.
type UpdateUserInput struct {
	Email    *string     `json:"email" validate:"omitempty,email,max=255"`
	Password *string     `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *model.Role `json:"role" validate:"omitempty,enum"`
}

// ResetPasswordInput is the body of a password reset request.
type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserService manages back-office accounts. Every mutation is audited.
type UserService interface {
	List(ctx context.Context, q ListUsersQuery) (*UserPage, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, actorID string, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, actorID, id string, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, actorID, id string) error
	ResetPassword(ctx context.Context, actorID, id, password string) error
	AuditTrail(ctx context.Context, id string, limit int) ([]model.UserAudit, error)
}

type userService struct {
	repo   repository.UserRepository
	audits repository.AuditRepository
	hasher *auth.PasswordHasher
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, audits repository.AuditRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{repo: repo, audits: audits, hasher: hasher}
}

func (s *userService) List(ctx context.Context, q ListUsersQuery) (*UserPage, error) {
	verr := apperrors.NewValidationError()
	if q.Page < 1 {
		verr.Add("page", "page must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		verr.Add("pageSize", fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, (q.Page-1)*q.PageSize, q.PageSize, q.Search)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return &UserPage{Users: users, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userStoreError(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, actorID string, in CreateUserInput) (*model.User, error) {
	email := model.NormalizeEmail(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.New(apperrors.ErrConflict, "A user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	role := model.RoleModerator
	if in.Role != nil {
		role = *in.Role
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, Password: hashed, Role: role}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.ErrConflict, "A user with this email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit(ctx, model.AuditCreate, user.ID, actorID, datatypes.JSONMap{
		"email": user.Email,
		"role":  string(user.Role),
	})
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorID, id string, in UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userStoreError(err)
	}

	changed := []string{}
	if in.Email != nil {
		email := model.NormalizeEmail(*in.Email)
		if email != user.Email {
			other, err := s.repo.FindByEmail(ctx, email)
			switch {
			case err == nil && other.ID != user.ID:
				return nil, apperrors.New(apperrors.ErrConflict, "Email is already in use by another user")
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, fmt.Errorf("check email: %w", err)
			}
			user.Email = email
			changed = append(changed, "email")
		}
	}
	if in.Role != nil && *in.Role != user.Role {
		user.Role = *in.Role
		changed = append(changed, "role")
	}
	if in.Password != nil {
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
		changed = append(changed, "password")
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.ErrConflict, "Email is already in use by another user")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit(ctx, model.AuditUpdate, user.ID, actorID, datatypes.JSONMap{"changedFields": changed})
	return user, nil
}

// Delete removes a user. The last ADMIN cannot be removed. The count and the
// delete are separate statements, so two concurrent deletes may both pass.
func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return userStoreError(err)
	}

	if user.Role == model.RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins <= 1 {
			return apperrors.New(apperrors.ErrInvariantViolation, "Cannot delete the last admin user")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return userStoreError(err)
	}

	s.audit(ctx, model.AuditDelete, user.ID, actorID, datatypes.JSONMap{
		"email": user.Email,
		"role":  string(user.Role),
	})
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, actorID, id, password string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return userStoreError(err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.audit(ctx, model.AuditResetPassword, user.ID, actorID, nil)
	return nil
}

// AuditTrail returns the newest audit rows about a user. Rows of deleted users stay readable.
func (s *userService) AuditTrail(ctx context.Context, id string, limit int) ([]model.UserAudit, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	entries, err := s.audits.ListByUser(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	if entries == nil {
		entries = []model.UserAudit{}
	}
	return entries, nil
}

// audit appends a row after the mutation committed. A failed write is logged, not returned.
func (s *userService) audit(ctx context.Context, action model.AuditAction, userID, actorID string, details datatypes.JSONMap) {
	entry := &model.UserAudit{UserID: userID, Action: action, Details: details}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		slog.WarnContext(ctx, "audit write failed",
			slog.String("action", string(action)),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

func userStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("User")
	}
	return err
}
