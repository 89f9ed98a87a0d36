package coupons

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
)

// Finder looks up coupons by code.
type Finder interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// OrderCounter reports how many orders a user has placed.
type OrderCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Service validates coupon codes against their eligibility rules.
type Service struct {
	coupons Finder
	orders  OrderCounter
}

func NewService(coupons Finder, orders OrderCounter) *Service {
	return &Service{coupons: coupons, orders: orders}
}

// Validate resolves a coupon code for the given user. An empty code means no
// coupon was supplied and resolves to (nil, nil).
func (s *Service) Validate(ctx context.Context, code string, userID uuid.UUID, isMember bool) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up coupon")
	}

	if coupon.ForNewUser {
		count, err := s.orders.CountByUser(ctx, userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting prior orders")
		}
		if count > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeIneligible, "coupon valid for new users only")
		}
	}

	if coupon.ForMember && !isMember {
		return nil, pkgerrors.New(pkgerrors.CodeIneligible, "coupon valid for members only")
	}

	return coupon, nil
}
