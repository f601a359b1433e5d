package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType enum constants (how cash was disbursed to a seller)
const (
	PaymentTypeCash         = "cash"
	PaymentTypeBankTransfer = "bank_transfer"
	PaymentTypeUPI          = "upi"
	PaymentTypeCheque       = "cheque"
)

// PendingStatus enum constants
const (
	PendingStatusPending = "pending"
	PendingStatusPartial = "partial"
	PendingStatusPaid    = "paid"
)

// Payment is cash paid out to a seller against their running balance. It is
// independent of stock and sales. ImagePath is an opaque receipt reference;
// upload storage itself lives at the HTTP boundary.
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller          *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate     time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	PaymentType     string          `gorm:"type:varchar(20);not null;default:'cash';index" json:"payment_type"` // cash, bank_transfer, upi, cheque
	ReferenceNumber string          `gorm:"type:varchar(100)" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	ImagePath       *string         `gorm:"type:varchar(255)" json:"image_path"`
	RecordedBy      *uuid.UUID      `gorm:"type:uuid" json:"recorded_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PendingAmount is a manually tracked unpaid obligation to a seller. It is a
// separate ledger kept by the operator, not derived from sales or payments.
type PendingAmount struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller      *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate     *time.Time      `gorm:"type:date" json:"due_date"`
	Description string          `gorm:"type:text" json:"description"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending, partial, paid
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
