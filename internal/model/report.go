package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellerBalanceRow is one per-seller line of the global payment summary.
type SellerBalanceRow struct {
	SellerID       string          `gorm:"column:seller_id" json:"id"`
	Name           string          `gorm:"column:name" json:"name"`
	TotalPayments  decimal.Decimal `gorm:"column:total_payments" json:"total_payments"`
	InitialBalance decimal.Decimal `gorm:"column:initial_balance" json:"initial_balance"`
	PendingAmount  decimal.Decimal `gorm:"column:pending_amount" json:"pending_amount"`
}

// MonthlyTrendPoint buckets payment totals by calendar month ("YYYY-MM").
// Months with no payments are simply absent from the series.
type MonthlyTrendPoint struct {
	Month string          `gorm:"column:month" json:"month"`
	Total decimal.Decimal `gorm:"column:total" json:"total"`
}

// GlobalSummary aggregates the cash position across all sellers.
// CashInHand = Σ initial_balance − Σ payment.amount (single shared pool).
type GlobalSummary struct {
	TotalPayments       decimal.Decimal     `json:"total_payments"`
	TotalInitialBalance decimal.Decimal     `json:"total_initial_balance"`
	CashInHand          decimal.Decimal     `json:"cash_in_hand"`
	TotalPending        decimal.Decimal     `json:"total_pending"`
	BySeller            []SellerBalanceRow  `json:"by_seller"`
	MonthlyTrend        []MonthlyTrendPoint `json:"monthly_trend"`
}

// MethodTotal groups sale proceeds by payment method.
type MethodTotal struct {
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	Total         decimal.Decimal `gorm:"column:total" json:"total"`
}

// SalesSummary is the sales-side cash view. RollingCash is driven by sale
// proceeds rather than seller balances; both views coexist deliberately.
type SalesSummary struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	RollingCash   decimal.Decimal `json:"rollingCash"`
	Profit        decimal.Decimal `json:"profit"`
	SalesByMethod []MethodTotal   `json:"salesByMethod"`
}

// StatusCount counts stock items per lifecycle status.
type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// SellerStockRow is the per-seller inventory breakdown.
type SellerStockRow struct {
	SellerID     string          `gorm:"column:seller_id" json:"id"`
	Name         string          `gorm:"column:name" json:"name"`
	ItemsInStock int64           `gorm:"column:items_in_stock" json:"items_in_stock"`
	StockValue   decimal.Decimal `gorm:"column:stock_value" json:"stock_value"`
	ItemsSold    int64           `gorm:"column:items_sold" json:"items_sold"`
}

// StockSummary aggregates current inventory value and counts.
type StockSummary struct {
	TotalStockValue decimal.Decimal  `json:"totalStockValue"`
	StockCount      []StatusCount    `json:"stockCount"`
	SellerSummary   []SellerStockRow `json:"sellerSummary"`
}

// SellerFinancialRow is one seller line of the financial report. Payment sums
// honor the report's date window; initial balance and pending amounts do not.
type SellerFinancialRow struct {
	SellerID         string          `gorm:"column:seller_id" json:"id"`
	Name             string          `gorm:"column:name" json:"name"`
	Location         string          `gorm:"column:location" json:"location"`
	InitialBalance   decimal.Decimal `gorm:"column:initial_balance" json:"initial_balance"`
	TotalPayments    decimal.Decimal `gorm:"column:total_payments" json:"total_payments"`
	BalanceRemaining decimal.Decimal `gorm:"-" json:"balance_remaining"`
	PendingAmount    decimal.Decimal `gorm:"column:pending_amount" json:"pending_amount"`
}

// PaymentTypeTotal groups payments by disbursement type over the report window.
type PaymentTypeTotal struct {
	PaymentType string          `gorm:"column:payment_type" json:"payment_type"`
	Count       int64           `gorm:"column:count" json:"count"`
	Total       decimal.Decimal `gorm:"column:total" json:"total"`
}

// ExportBundle is the full-database JSON backup payload.
type ExportBundle struct {
	ExportDate  time.Time       `json:"export_date"`
	Version     string          `json:"version"`
	Sellers     []Seller        `json:"sellers"`
	StockItems  []StockItem     `json:"stock_items"`
	Sales       []Sale          `json:"sales"`
	Payments    []Payment       `json:"payments"`
	Pending     []PendingAmount `json:"pending_amounts"`
	Exhibitions []Exhibition    `json:"exhibitions"`
}

// ExhibitionPerformanceRow is an exhibition with its attached sales totals.
type ExhibitionPerformanceRow struct {
	Exhibition
	SalesCount  int64           `gorm:"column:sales_count" json:"sales_count"`
	TotalSales  decimal.Decimal `gorm:"column:total_sales" json:"total_sales"`
	TotalProfit decimal.Decimal `gorm:"column:total_profit" json:"total_profit"`
}
