package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SellerStatus enum constants
const (
	SellerStatusActive   = "active"
	SellerStatusInactive = "inactive"
)

// Seller represents a consignor supplying items for resale. InitialBalance is
// the amount owed to the seller before any payments; it may be negative.
type Seller struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Location       string          `gorm:"type:varchar(255)" json:"location"`
	ContactPerson  string          `gorm:"type:varchar(255)" json:"contact_person"`
	Phone          string          `gorm:"type:varchar(50)" json:"phone"`
	Email          string          `gorm:"type:varchar(255)" json:"email"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"initial_balance"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Status         string          `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active, inactive
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
