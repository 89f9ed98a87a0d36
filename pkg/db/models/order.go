package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
)

// Order is the per-store result of a checkout: one row per store group,
// created together with its items and never mutated afterward.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	StoreID       uuid.UUID           `gorm:"column:store_id;type:uuid;not null"`
	AddressID     uuid.UUID           `gorm:"column:address_id;type:uuid;not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'placed'"`
	IsCouponUsed  bool                `gorm:"column:is_coupon_used;not null;default:false"`
	CouponID      *uuid.UUID          `gorm:"column:coupon_id;type:uuid"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Address       *Address            `gorm:"foreignKey:AddressID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
