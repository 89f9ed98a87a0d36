package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
)

// Store represents a seller's storefront. Seller privileges require the
// status to be exactly approved.
type Store struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID         `gorm:"column:owner;type:uuid;not null;uniqueIndex"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Status      enums.StoreStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Categories  pq.StringArray    `gorm:"column:categories;type:text[]"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
