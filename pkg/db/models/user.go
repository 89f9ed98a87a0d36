package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	"github.com/DragonsUnit/AeroCommerce/pkg/types"
)

// User represents the canonical identity entity. The embedded cart is a
// product id → quantity map, wiped after a successful checkout.
type User struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string               `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string               `gorm:"column:password_hash;not null"`
	FirstName    string               `gorm:"column:first_name;not null"`
	LastName     string               `gorm:"column:last_name;not null"`
	Plan         enums.MembershipPlan `gorm:"column:plan;type:text;not null;default:'free'"`
	Cart         types.CartContents   `gorm:"column:cart;type:jsonb;serializer:json"`
	IsActive     bool                 `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time           `gorm:"column:last_login_at"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
