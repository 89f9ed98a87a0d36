package authz

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

// EmailResolver resolves a user id to their account email.
type EmailResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// StoreResolver resolves a user id to their store, if they own one.
type StoreResolver interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
}

// Service answers the admin and seller authorization predicates. Both are
// fail-closed: any resolution error denies access and is logged at warn level.
type Service struct {
	users  EmailResolver
	stores StoreResolver
	admins []string
	logg   *logger.Logger
}

func NewService(users EmailResolver, stores StoreResolver, adminCfg config.AdminConfig, logg *logger.Logger) *Service {
	return &Service{
		users:  users,
		stores: stores,
		admins: adminCfg.AllowedEmails(),
		logg:   logg,
	}
}

// Admin reports whether the user's email is on the allow-list. Matching is
// exact and case-sensitive.
func (s *Service) Admin(ctx context.Context, userID uuid.UUID) bool {
	if userID == uuid.Nil || len(s.admins) == 0 {
		return false
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.warn(ctx, "admin check failed to resolve user", err, userID)
		return false
	}
	if user == nil || user.Email == "" {
		return false
	}
	return slices.Contains(s.admins, user.Email)
}

// Seller returns the user's store id when they own an approved store.
func (s *Service) Seller(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool) {
	if userID == uuid.Nil {
		return uuid.Nil, false
	}
	store, err := s.stores.FindByOwner(ctx, userID)
	if err != nil {
		s.warn(ctx, "seller check failed to resolve store", err, userID)
		return uuid.Nil, false
	}
	if store == nil || store.Status != enums.StoreStatusApproved {
		return uuid.Nil, false
	}
	return store.ID, true
}

func (s *Service) warn(ctx context.Context, msg string, err error, userID uuid.UUID) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id": userID.String(),
		"error":   err.Error(),
	})
	s.logg.Warn(logCtx, msg)
}
