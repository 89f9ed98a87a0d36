package coupons

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
)

type fakeFinder struct {
	coupons map[string]*models.Coupon
	err     error
}

func (f *fakeFinder) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	if f.err != nil {
		return nil, f.err
	}
	coupon, ok := f.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return coupon, nil
}

type fakeCounter struct {
	count int64
	err   error
}

func (f *fakeCounter) CountByUser(context.Context, uuid.UUID) (int64, error) {
	return f.count, f.err
}

func newCoupon(code string, forNewUser, forMember bool) *models.Coupon {
	return &models.Coupon{
		ID:         uuid.New(),
		Code:       code,
		Discount:   decimal.NewFromInt(10),
		ForNewUser: forNewUser,
		ForMember:  forMember,
	}
}

func TestValidateEmptyCode(t *testing.T) {
	svc := NewService(&fakeFinder{}, &fakeCounter{})

	coupon, err := svc.Validate(context.Background(), "", uuid.New(), false)
	require.NoError(t, err)
	assert.Nil(t, coupon)

	coupon, err = svc.Validate(context.Background(), "   ", uuid.New(), false)
	require.NoError(t, err)
	assert.Nil(t, coupon)
}

func TestValidateUnknownCode(t *testing.T) {
	svc := NewService(&fakeFinder{coupons: map[string]*models.Coupon{}}, &fakeCounter{})

	_, err := svc.Validate(context.Background(), "NOPE", uuid.New(), false)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, "coupon not found", appErr.Message())
}

func TestValidateNewUserCouponWithPriorOrders(t *testing.T) {
	finder := &fakeFinder{coupons: map[string]*models.Coupon{
		"WELCOME10": newCoupon("WELCOME10", true, false),
	}}
	svc := NewService(finder, &fakeCounter{count: 3})

	_, err := svc.Validate(context.Background(), "WELCOME10", uuid.New(), false)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeIneligible, appErr.Code())
	assert.Equal(t, "coupon valid for new users only", appErr.Message())
}

func TestValidateNewUserCouponFirstOrder(t *testing.T) {
	finder := &fakeFinder{coupons: map[string]*models.Coupon{
		"WELCOME10": newCoupon("WELCOME10", true, false),
	}}
	svc := NewService(finder, &fakeCounter{count: 0})

	coupon, err := svc.Validate(context.Background(), "WELCOME10", uuid.New(), false)
	require.NoError(t, err)
	require.NotNil(t, coupon)
	assert.Equal(t, "WELCOME10", coupon.Code)
}

func TestValidateMemberCoupon(t *testing.T) {
	finder := &fakeFinder{coupons: map[string]*models.Coupon{
		"PLUS10": newCoupon("PLUS10", false, true),
	}}
	svc := NewService(finder, &fakeCounter{})

	_, err := svc.Validate(context.Background(), "PLUS10", uuid.New(), false)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeIneligible, appErr.Code())
	assert.Equal(t, "coupon valid for members only", appErr.Message())

	coupon, err := svc.Validate(context.Background(), "PLUS10", uuid.New(), true)
	require.NoError(t, err)
	require.NotNil(t, coupon)
}

func TestValidateCounterOnlyConsultedForNewUserCoupons(t *testing.T) {
	finder := &fakeFinder{coupons: map[string]*models.Coupon{
		"SAVE10": newCoupon("SAVE10", false, false),
	}}
	svc := NewService(finder, &fakeCounter{err: assert.AnError})

	coupon, err := svc.Validate(context.Background(), "SAVE10", uuid.New(), false)
	require.NoError(t, err)
	require.NotNil(t, coupon)
}

func TestValidateLookupFailure(t *testing.T) {
	svc := NewService(&fakeFinder{err: assert.AnError}, &fakeCounter{})

	_, err := svc.Validate(context.Background(), "SAVE10", uuid.New(), false)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}
