package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon is a percentage discount code. Managed elsewhere; orders only read
// it and keep a referential link by id.
type Coupon struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code       string          `gorm:"column:code;type:text;not null;uniqueIndex"`
	Discount   decimal.Decimal `gorm:"column:discount;type:numeric(5,2);not null"`
	ForNewUser bool            `gorm:"column:for_new_user;not null;default:false"`
	ForMember  bool            `gorm:"column:for_member;not null;default:false"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
