package service

import (
	"context"
	"fmt"
	"time"

	"sellersync/internal/model"
	"sellersync/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type FinancialTotals struct {
	TotalInitialBalance decimal.Decimal `json:"total_initial_balance"`
	TotalPayments       decimal.Decimal `json:"total_payments"`
	CashInHand          decimal.Decimal `json:"cash_in_hand"`
	TotalPending        decimal.Decimal `json:"total_pending"`
}

// FinancialReport is the date-filtered per-seller report. Only payment sums
// honor the window; sale and pending figures are always all-time.
type FinancialReport struct {
	ReportDate    time.Time                  `json:"report_date"`
	DateRange     DateRange                  `json:"date_range"`
	Summary       FinancialTotals            `json:"summary"`
	BySeller      []model.SellerFinancialRow `json:"by_seller"`
	ByPaymentType []model.PaymentTypeTotal   `json:"by_payment_type"`
}

// --- Interface ---

// ReportService is the read-side aggregator. It composes repository sums into
// the derived figures; all arithmetic happens here on decimals so the
// formulas hold independent of SQL dialect.
type ReportService interface {
	GlobalSummary(ctx context.Context) (*model.GlobalSummary, error)
	SalesSummary(ctx context.Context) (*model.SalesSummary, error)
	StockSummary(ctx context.Context) (*model.StockSummary, error)
	FinancialReport(ctx context.Context, fromDate, toDate, sellerID string) (*FinancialReport, error)
	ExportSnapshot(ctx context.Context) (*model.ExportBundle, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// trendMonths is the trailing window of the payment trend. Months without
// payments are absent from the series rather than zero-filled.
const trendMonths = 6

// GlobalSummary derives the shared cash pool:
// cash_in_hand = Σ initial_balance − Σ payment.amount across all sellers.
func (s *reportService) GlobalSummary(ctx context.Context) (*model.GlobalSummary, error) {
	totalPayments, err := s.reportRepo.TotalPayments(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	totalBalance, err := s.reportRepo.TotalInitialBalance(ctx)
	if err != nil {
		return nil, err
	}
	totalPending, err := s.reportRepo.TotalPending(ctx)
	if err != nil {
		return nil, err
	}
	bySeller, err := s.reportRepo.SellerBalances(ctx)
	if err != nil {
		return nil, err
	}
	trend, err := s.reportRepo.MonthlyPaymentTrend(ctx, trendMonths)
	if err != nil {
		return nil, err
	}

	return &model.GlobalSummary{
		TotalPayments:       totalPayments,
		TotalInitialBalance: totalBalance,
		CashInHand:          totalBalance.Sub(totalPayments),
		TotalPending:        totalPending,
		BySeller:            bySeller,
		MonthlyTrend:        trend,
	}, nil
}

// SalesSummary derives the sales-side view:
// rollingCash = Σ selling_price − Σ payment.amount,
// profit = Σ selling_price − Σ cost_price of sold items.
func (s *reportService) SalesSummary(ctx context.Context) (*model.SalesSummary, error) {
	totalSales, err := s.reportRepo.TotalSales(ctx)
	if err != nil {
		return nil, err
	}
	totalCost, err := s.reportRepo.TotalCostOfSold(ctx)
	if err != nil {
		return nil, err
	}
	totalPayments, err := s.reportRepo.TotalPayments(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.reportRepo.SalesByMethod(ctx)
	if err != nil {
		return nil, err
	}

	return &model.SalesSummary{
		TotalSales:    totalSales,
		TotalCost:     totalCost,
		TotalPayments: totalPayments,
		RollingCash:   totalSales.Sub(totalPayments),
		Profit:        totalSales.Sub(totalCost),
		SalesByMethod: byMethod,
	}, nil
}

func (s *reportService) StockSummary(ctx context.Context) (*model.StockSummary, error) {
	totalValue, err := s.reportRepo.InStockValue(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.reportRepo.StockCounts(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.reportRepo.SellerStockBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	return &model.StockSummary{
		TotalStockValue: totalValue,
		StockCount:      counts,
		SellerSummary:   breakdown,
	}, nil
}

// FinancialReport applies the optional date window to payment figures only.
// Initial balances and pending amounts are deliberately unfiltered; the
// report answers "what was paid in this window against the standing ledger".
func (s *reportService) FinancialReport(ctx context.Context, fromDate, toDate, sellerID string) (*FinancialReport, error) {
	from, err := parseOptionalDate("from_date", fromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to_date", toDate)
	if err != nil {
		return nil, err
	}

	var sellerFilter *uuid.UUID
	if sellerID != "" {
		parsed, err := uuid.Parse(sellerID)
		if err != nil {
			return nil, fmt.Errorf("invalid seller_id: %w", ErrValidation)
		}
		sellerFilter = &parsed
	}

	windowPayments, err := s.reportRepo.TotalPayments(ctx, from, to)
	if err != nil {
		return nil, err
	}
	totalBalance, err := s.reportRepo.TotalInitialBalance(ctx)
	if err != nil {
		return nil, err
	}
	totalPending, err := s.reportRepo.TotalPending(ctx)
	if err != nil {
		return nil, err
	}
	bySeller, err := s.reportRepo.SellerFinancials(ctx, from, to, sellerFilter)
	if err != nil {
		return nil, err
	}
	byType, err := s.reportRepo.PaymentTypeBreakdown(ctx, from, to)
	if err != nil {
		return nil, err
	}

	for i := range bySeller {
		bySeller[i].BalanceRemaining = bySeller[i].InitialBalance.Sub(bySeller[i].TotalPayments)
	}

	rangeFrom := "All time"
	if fromDate != "" {
		rangeFrom = fromDate
	}
	rangeTo := "Present"
	if toDate != "" {
		rangeTo = toDate
	}

	return &FinancialReport{
		ReportDate: time.Now().UTC(),
		DateRange:  DateRange{From: rangeFrom, To: rangeTo},
		Summary: FinancialTotals{
			TotalInitialBalance: totalBalance,
			TotalPayments:       windowPayments,
			CashInHand:          totalBalance.Sub(windowPayments),
			TotalPending:        totalPending,
		},
		BySeller:      bySeller,
		ByPaymentType: byType,
	}, nil
}

func (s *reportService) ExportSnapshot(ctx context.Context) (*model.ExportBundle, error) {
	bundle, err := s.reportRepo.ExportSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export ledger data: %w", err)
	}
	bundle.ExportDate = time.Now().UTC()
	bundle.Version = "1.0"
	return bundle, nil
}
