package services

import (
	"context"
	"errors"
	"strings"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/pkg/clock"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

type userService struct {
	Store userUSStore
	Clock clock.Clock
}

func NewUserService(store userUSStore, clk clock.Clock) *userService {
	return &userService{
		Store: store,
		Clock: clk,
	}
}

// Register creates a user keyed by uid. The admin role is only granted when
// adminClaim is set, which callers derive from a verified identity token and
// never from the request body.
func (s *userService) Register(ctx context.Context, uid, email string, role models.Role, adminClaim bool) (*models.User, error) {
	log := logger.FromContext(ctx)

	uid = strings.TrimSpace(uid)
	email = strings.TrimSpace(email)
	if uid == "" {
		return nil, errs.NewValidationError("uid is required")
	}
	if email == "" {
		return nil, errs.NewValidationError("email is required")
	}
	if role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		return nil, errs.NewValidationError("role must be employee or admin")
	}
	if role == models.RoleAdmin && !adminClaim {
		log.Warn("admin registration refused", "uid", uid)
		return nil, errs.NewForbiddenError("admin role requires an admin claim")
	}

	user := &models.User{
		UID:       uid,
		Email:     email,
		Role:      role,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Warn("failed to create user in store", "uid", uid, "error", err)
		return nil, err
	}

	log.Info("user registered", "uid", uid, "role", role)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

func (s *userService) ListEmployees(ctx context.Context) ([]*models.User, error) {
	return s.Store.ListByRole(ctx, models.RoleEmployee)
}

// IsAdmin reports whether the stored role for uid is admin. Unknown users are
// not admins.
func (s *userService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
