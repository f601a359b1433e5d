package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus enum constants
const (
	StockStatusInStock = "in_stock"
	StockStatusSold    = "sold"
)

// PaymentMethod enum constants (how a sale was paid for)
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// StockItem is a unit of consigned inventory owned by a seller. Status is
// in_stock ⇔ no Sale references the item and sold ⇔ exactly one does; the
// only legal transitions are the paired Sale create/delete in the inventory
// service, never a direct status update.
type StockItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller    *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	Status    string          `gorm:"type:varchar(20);not null;default:'in_stock';index" json:"status"` // in_stock, sold
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Sale records a stock item being sold at a price. ExhibitionID is a weak
// reference: deleting the exhibition nulls it without touching the sale.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StockItemID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"stock_item_id"`
	StockItem    *StockItem      `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	PaymentMethod string         `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"` // cash, online
	SaleDate     time.Time       `gorm:"type:date;not null;index" json:"sale_date"`
	Notes        string          `gorm:"type:text" json:"notes"`
	ExhibitionID *uuid.UUID      `gorm:"type:uuid;index" json:"exhibition_id"`
	RecordedBy   *uuid.UUID      `gorm:"type:uuid" json:"recorded_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
