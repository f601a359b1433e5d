package repository

import (
	"context"
	"fmt"
	"time"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository is the read-side aggregate layer. Every sum query carries a
// COALESCE so empty tables produce zero, never NULL.
type ReportRepository interface {
	TotalPayments(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	TotalInitialBalance(ctx context.Context) (decimal.Decimal, error)
	TotalPending(ctx context.Context) (decimal.Decimal, error)
	SellerBalances(ctx context.Context) ([]model.SellerBalanceRow, error)
	MonthlyPaymentTrend(ctx context.Context, months int) ([]model.MonthlyTrendPoint, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	TotalCostOfSold(ctx context.Context) (decimal.Decimal, error)
	SalesByMethod(ctx context.Context) ([]model.MethodTotal, error)
	InStockValue(ctx context.Context) (decimal.Decimal, error)
	StockCounts(ctx context.Context) ([]model.StatusCount, error)
	SellerStockBreakdown(ctx context.Context) ([]model.SellerStockRow, error)
	SellerFinancials(ctx context.Context, from, to *time.Time, sellerID *uuid.UUID) ([]model.SellerFinancialRow, error)
	PaymentTypeBreakdown(ctx context.Context, from, to *time.Time) ([]model.PaymentTypeTotal, error)
	ExportSnapshot(ctx context.Context) (*model.ExportBundle, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) sumQuery(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := GetDB(ctx, r.db).Raw(query, args...).Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("aggregate query failed: %w", err)
	}
	return result.Total, nil
}

func (r *reportRepository) TotalPayments(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	query := "SELECT COALESCE(SUM(amount), 0) AS total FROM payments WHERE 1=1"
	args := []interface{}{}
	if from != nil {
		query += " AND payment_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND payment_date <= ?"
		args = append(args, *to)
	}
	return r.sumQuery(ctx, query, args...)
}

func (r *reportRepository) TotalInitialBalance(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx, "SELECT COALESCE(SUM(initial_balance), 0) AS total FROM sellers WHERE deleted_at IS NULL")
}

func (r *reportRepository) TotalPending(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx,
		"SELECT COALESCE(SUM(amount), 0) AS total FROM pending_amounts WHERE status <> ?",
		model.PendingStatusPaid)
}

func (r *reportRepository) SellerBalances(ctx context.Context) ([]model.SellerBalanceRow, error) {
	var rows []model.SellerBalanceRow
	err := GetDB(ctx, r.db).Raw(`
		SELECT s.id AS seller_id, s.name, s.initial_balance,
		       COALESCE(SUM(p.amount), 0) AS total_payments,
		       COALESCE((SELECT SUM(pa.amount) FROM pending_amounts pa
		                 WHERE pa.seller_id = s.id AND pa.status <> ?), 0) AS pending_amount
		FROM sellers s
		LEFT JOIN payments p ON p.seller_id = s.id
		WHERE s.deleted_at IS NULL
		GROUP BY s.id, s.name, s.initial_balance
		ORDER BY s.name
	`, model.PendingStatusPaid).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query seller balances: %w", err)
	}
	return rows, nil
}

// MonthlyPaymentTrend buckets payment totals per calendar month over the
// trailing window. Months without payments are absent from the result.
func (r *reportRepository) MonthlyPaymentTrend(ctx context.Context, months int) ([]model.MonthlyTrendPoint, error) {
	var rows []model.MonthlyTrendPoint
	err := GetDB(ctx, r.db).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('month', payment_date), 'YYYY-MM') AS month,
		       SUM(amount) AS total
		FROM payments
		WHERE payment_date >= CURRENT_DATE - (? * INTERVAL '1 month')
		GROUP BY DATE_TRUNC('month', payment_date)
		ORDER BY month
	`, months).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx, "SELECT COALESCE(SUM(selling_price), 0) AS total FROM sales")
}

// TotalCostOfSold sums cost_price only for items joined through a sale, so
// unsold inventory never counts toward cost of goods sold.
func (r *reportRepository) TotalCostOfSold(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx, `
		SELECT COALESCE(SUM(si.cost_price), 0) AS total
		FROM sales sa
		JOIN stock_items si ON si.id = sa.stock_item_id`)
}

func (r *reportRepository) SalesByMethod(ctx context.Context) ([]model.MethodTotal, error) {
	var rows []model.MethodTotal
	err := GetDB(ctx, r.db).Raw(`
		SELECT payment_method, SUM(selling_price) AS total
		FROM sales
		GROUP BY payment_method
		ORDER BY payment_method
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by method: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) InStockValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumQuery(ctx,
		"SELECT COALESCE(SUM(cost_price), 0) AS total FROM stock_items WHERE status = ?",
		model.StockStatusInStock)
}

func (r *reportRepository) StockCounts(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := GetDB(ctx, r.db).Raw(`
		SELECT status, COUNT(*) AS count
		FROM stock_items
		GROUP BY status
		ORDER BY status
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query stock counts: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) SellerStockBreakdown(ctx context.Context) ([]model.SellerStockRow, error) {
	var rows []model.SellerStockRow
	err := GetDB(ctx, r.db).Raw(`
		SELECT s.id AS seller_id, s.name,
		       COUNT(CASE WHEN si.status = ? THEN 1 END) AS items_in_stock,
		       COALESCE(SUM(CASE WHEN si.status = ? THEN si.cost_price ELSE 0 END), 0) AS stock_value,
		       COUNT(CASE WHEN si.status = ? THEN 1 END) AS items_sold
		FROM sellers s
		LEFT JOIN stock_items si ON si.seller_id = s.id
		WHERE s.deleted_at IS NULL
		GROUP BY s.id, s.name
		ORDER BY s.name
	`, model.StockStatusInStock, model.StockStatusInStock, model.StockStatusSold).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query seller stock breakdown: %w", err)
	}
	return rows, nil
}

// SellerFinancials lists per-seller payment sums. The date window applies only
// to the payment join; initial balances and pending amounts stay unfiltered.
func (r *reportRepository) SellerFinancials(ctx context.Context, from, to *time.Time, sellerID *uuid.UUID) ([]model.SellerFinancialRow, error) {
	// placeholders bind in textual order: pending status (SELECT subquery),
	// then the join window bounds, then the seller filter
	args := []interface{}{model.PendingStatusPaid}

	join := "LEFT JOIN payments p ON p.seller_id = s.id"
	if from != nil {
		join += " AND p.payment_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		join += " AND p.payment_date <= ?"
		args = append(args, *to)
	}

	where := "WHERE s.deleted_at IS NULL"
	if sellerID != nil {
		where += " AND s.id = ?"
		args = append(args, *sellerID)
	}

	query := fmt.Sprintf(`
		SELECT s.id AS seller_id, s.name, s.location, s.initial_balance,
		       COALESCE(SUM(p.amount), 0) AS total_payments,
		       COALESCE((SELECT SUM(pa.amount) FROM pending_amounts pa
		                 WHERE pa.seller_id = s.id AND pa.status <> ?), 0) AS pending_amount
		FROM sellers s
		%s
		%s
		GROUP BY s.id, s.name, s.location, s.initial_balance
		ORDER BY s.name
	`, join, where)

	var rows []model.SellerFinancialRow
	if err := GetDB(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query seller financials: %w", err)
	}
	return rows, nil
}

// ExportSnapshot loads every ledger table for the JSON backup endpoint.
func (r *reportRepository) ExportSnapshot(ctx context.Context) (*model.ExportBundle, error) {
	db := GetDB(ctx, r.db)
	bundle := &model.ExportBundle{}

	if err := db.Order("name").Find(&bundle.Sellers).Error; err != nil {
		return nil, fmt.Errorf("failed to export sellers: %w", err)
	}
	if err := db.Order("created_at").Find(&bundle.StockItems).Error; err != nil {
		return nil, fmt.Errorf("failed to export stock items: %w", err)
	}
	if err := db.Order("sale_date").Find(&bundle.Sales).Error; err != nil {
		return nil, fmt.Errorf("failed to export sales: %w", err)
	}
	if err := db.Order("payment_date").Find(&bundle.Payments).Error; err != nil {
		return nil, fmt.Errorf("failed to export payments: %w", err)
	}
	if err := db.Order("created_at").Find(&bundle.Pending).Error; err != nil {
		return nil, fmt.Errorf("failed to export pending amounts: %w", err)
	}
	if err := db.Order("start_date").Find(&bundle.Exhibitions).Error; err != nil {
		return nil, fmt.Errorf("failed to export exhibitions: %w", err)
	}
	return bundle, nil
}

func (r *reportRepository) PaymentTypeBreakdown(ctx context.Context, from, to *time.Time) ([]model.PaymentTypeTotal, error) {
	query := `
		SELECT payment_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE 1=1`
	args := []interface{}{}
	if from != nil {
		query += " AND payment_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND payment_date <= ?"
		args = append(args, *to)
	}
	query += " GROUP BY payment_type ORDER BY payment_type"

	var rows []model.PaymentTypeTotal
	if err := GetDB(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query payment type breakdown: %w", err)
	}
	return rows, nil
}
