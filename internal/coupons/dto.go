package coupons

import (
	"time"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
)

// CouponView is the admin-facing shape of a coupon row.
type CouponView struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Discount   string    `json:"discount"`
	ForNewUser bool      `json:"for_new_user"`
	ForMember  bool      `json:"for_member"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToCouponView(coupon models.Coupon) CouponView {
	return CouponView{
		ID:         coupon.ID,
		Code:       coupon.Code,
		Discount:   coupon.Discount.StringFixed(2),
		ForNewUser: coupon.ForNewUser,
		ForMember:  coupon.ForMember,
		CreatedAt:  coupon.CreatedAt,
	}
}

func ToCouponViews(rows []models.Coupon) []CouponView {
	views := make([]CouponView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ToCouponView(row))
	}
	return views
}
