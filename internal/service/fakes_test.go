package service

import (
	"context"
	"time"

	"sellersync/internal/model"
	"sellersync/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. They keep rows in maps and mirror the
// gorm.ErrRecordNotFound contract of the real implementations.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeSellerRepo struct {
	sellers  map[uuid.UUID]*model.Seller
	balances map[uuid.UUID]*model.SellerBalanceRow
}

func newFakeSellerRepo() *fakeSellerRepo {
	return &fakeSellerRepo{
		sellers:  make(map[uuid.UUID]*model.Seller),
		balances: make(map[uuid.UUID]*model.SellerBalanceRow),
	}
}

func (f *fakeSellerRepo) Create(_ context.Context, seller *model.Seller) error {
	if seller.ID == uuid.Nil {
		seller.ID = uuid.New()
	}
	copied := *seller
	f.sellers[seller.ID] = &copied
	return nil
}

func (f *fakeSellerRepo) Update(_ context.Context, seller *model.Seller) error {
	if _, ok := f.sellers[seller.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *seller
	f.sellers[seller.ID] = &copied
	return nil
}

func (f *fakeSellerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.sellers, id)
	return nil
}

func (f *fakeSellerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Seller, error) {
	seller, ok := f.sellers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *seller
	return &copied, nil
}

func (f *fakeSellerRepo) List(_ context.Context, status, search string, page, limit int) ([]model.Seller, int64, error) {
	var out []model.Seller
	for _, s := range f.sellers {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSellerRepo) BalanceRow(_ context.Context, id uuid.UUID) (*model.SellerBalanceRow, error) {
	if row, ok := f.balances[id]; ok {
		copied := *row
		return &copied, nil
	}
	seller, ok := f.sellers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.SellerBalanceRow{
		SellerID:       id.String(),
		Name:           seller.Name,
		InitialBalance: seller.InitialBalance,
		TotalPayments:  decimal.Zero,
		PendingAmount:  decimal.Zero,
	}, nil
}

func (f *fakeSellerRepo) BalanceRows(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.SellerBalanceRow, error) {
	out := make(map[uuid.UUID]model.SellerBalanceRow, len(ids))
	for _, id := range ids {
		row, err := f.BalanceRow(ctx, id)
		if err != nil {
			continue
		}
		out[id] = *row
	}
	return out, nil
}

type fakeStockRepo struct {
	items map[uuid.UUID]*model.StockItem
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[uuid.UUID]*model.StockItem)}
}

func (f *fakeStockRepo) Create(_ context.Context, item *model.StockItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeStockRepo) UpdateDetails(_ context.Context, id uuid.UUID, itemName string, costPrice decimal.Decimal) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.ItemName = itemName
	item.CostPrice = costPrice
	return nil
}

func (f *fakeStockRepo) DeleteInStock(_ context.Context, id uuid.UUID) (int64, error) {
	item, ok := f.items[id]
	if !ok || item.Status != model.StockStatusInStock {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func (f *fakeStockRepo) DeleteBySeller(_ context.Context, sellerID uuid.UUID) error {
	for id, item := range f.items {
		if item.SellerID == sellerID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeStockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStockRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeStockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Status = status
	return nil
}

func (f *fakeStockRepo) List(_ context.Context, sellerID *uuid.UUID, status string, page, limit int) ([]model.StockItem, int64, error) {
	var out []model.StockItem
	for _, item := range f.items {
		if sellerID != nil && item.SellerID != *sellerID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	// stock backs DeleteBySeller, which matches sales through their stock
	// items. Fixtures that exercise the seller cascade wire it up.
	stock *fakeStockRepo
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (f *fakeSaleRepo) DeleteBySeller(_ context.Context, sellerID uuid.UUID) error {
	if f.stock == nil {
		return nil
	}
	for id, sale := range f.sales {
		if item, ok := f.stock.items[sale.StockItemID]; ok && item.SellerID == sellerID {
			delete(f.sales, id)
		}
	}
	return nil
}

func (f *fakeSaleRepo) Create(_ context.Context, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	copied := *sale
	f.sales[sale.ID] = &copied
	return nil
}

func (f *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sale
	return &copied, nil
}

func (f *fakeSaleRepo) List(_ context.Context, filter repository.SaleFilter, page, limit int) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, sale := range f.sales {
		if filter.ExhibitionID != nil {
			if sale.ExhibitionID == nil || *sale.ExhibitionID != *filter.ExhibitionID {
				continue
			}
		}
		if filter.PaymentMethod != "" && sale.PaymentMethod != filter.PaymentMethod {
			continue
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) ClearExhibition(_ context.Context, exhibitionID uuid.UUID) error {
	for _, sale := range f.sales {
		if sale.ExhibitionID != nil && *sale.ExhibitionID == exhibitionID {
			sale.ExhibitionID = nil
		}
	}
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (f *fakePaymentRepo) DeleteBySeller(_ context.Context, sellerID uuid.UUID) error {
	for id, payment := range f.payments {
		if payment.SellerID == sellerID {
			delete(f.payments, id)
		}
	}
	return nil
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *model.Payment) error {
	if _, ok := f.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) List(_ context.Context, filter repository.PaymentFilter, page, limit int) ([]model.Payment, int64, error) {
	var out []model.Payment
	for _, payment := range f.payments {
		if filter.SellerID != nil && payment.SellerID != *filter.SellerID {
			continue
		}
		if filter.PaymentType != "" && payment.PaymentType != filter.PaymentType {
			continue
		}
		out = append(out, *payment)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) RecentBySeller(_ context.Context, sellerID uuid.UUID, limit int) ([]model.Payment, error) {
	var out []model.Payment
	for _, payment := range f.payments {
		if payment.SellerID == sellerID {
			out = append(out, *payment)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePendingRepo struct {
	pending map[uuid.UUID]*model.PendingAmount
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{pending: make(map[uuid.UUID]*model.PendingAmount)}
}

func (f *fakePendingRepo) DeleteBySeller(_ context.Context, sellerID uuid.UUID) error {
	for id, p := range f.pending {
		if p.SellerID == sellerID {
			delete(f.pending, id)
		}
	}
	return nil
}

func (f *fakePendingRepo) Create(_ context.Context, p *model.PendingAmount) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	f.pending[p.ID] = &copied
	return nil
}

func (f *fakePendingRepo) Update(_ context.Context, p *model.PendingAmount) error {
	if _, ok := f.pending[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *p
	f.pending[p.ID] = &copied
	return nil
}

func (f *fakePendingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PendingAmount, error) {
	p, ok := f.pending[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePendingRepo) ListOpen(_ context.Context) ([]model.PendingAmount, error) {
	var out []model.PendingAmount
	for _, p := range f.pending {
		if p.Status != model.PendingStatusPaid {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePendingRepo) ListOpenBySeller(_ context.Context, sellerID uuid.UUID) ([]model.PendingAmount, error) {
	var out []model.PendingAmount
	for _, p := range f.pending {
		if p.SellerID == sellerID && p.Status != model.PendingStatusPaid {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeExhibitionRepo struct {
	exhibitions map[uuid.UUID]*model.Exhibition
}

func newFakeExhibitionRepo() *fakeExhibitionRepo {
	return &fakeExhibitionRepo{exhibitions: make(map[uuid.UUID]*model.Exhibition)}
}

func (f *fakeExhibitionRepo) Create(_ context.Context, e *model.Exhibition) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	copied := *e
	f.exhibitions[e.ID] = &copied
	return nil
}

func (f *fakeExhibitionRepo) Update(_ context.Context, e *model.Exhibition) error {
	if _, ok := f.exhibitions[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *e
	f.exhibitions[e.ID] = &copied
	return nil
}

func (f *fakeExhibitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.exhibitions, id)
	return nil
}

func (f *fakeExhibitionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Exhibition, error) {
	e, ok := f.exhibitions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExhibitionRepo) ListWithPerformance(_ context.Context, status string) ([]model.ExhibitionPerformanceRow, error) {
	var out []model.ExhibitionPerformanceRow
	for _, e := range f.exhibitions {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, model.ExhibitionPerformanceRow{Exhibition: *e})
	}
	return out, nil
}

func (f *fakeExhibitionRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, e := range f.exhibitions {
		if status == "" || e.Status == status {
			n++
		}
	}
	return n, nil
}

// fakeReportRepo returns canned sums set directly by each test.
type fakeReportRepo struct {
	totalPayments       decimal.Decimal
	windowPayments      *decimal.Decimal
	totalInitialBalance decimal.Decimal
	totalPending        decimal.Decimal
	totalSales          decimal.Decimal
	totalCostOfSold     decimal.Decimal
	inStockValue        decimal.Decimal
	sellerBalances      []model.SellerBalanceRow
	monthlyTrend        []model.MonthlyTrendPoint
	salesByMethod       []model.MethodTotal
	stockCounts         []model.StatusCount
	sellerStockRows     []model.SellerStockRow
	sellerFinancials    []model.SellerFinancialRow
	paymentTypes        []model.PaymentTypeTotal

	financialsFrom *time.Time
	financialsTo   *time.Time
	financialsID   *uuid.UUID
}

func (f *fakeReportRepo) TotalPayments(_ context.Context, from, to *time.Time) (decimal.Decimal, error) {
	if (from != nil || to != nil) && f.windowPayments != nil {
		return *f.windowPayments, nil
	}
	return f.totalPayments, nil
}

func (f *fakeReportRepo) TotalInitialBalance(_ context.Context) (decimal.Decimal, error) {
	return f.totalInitialBalance, nil
}

func (f *fakeReportRepo) TotalPending(_ context.Context) (decimal.Decimal, error) {
	return f.totalPending, nil
}

func (f *fakeReportRepo) SellerBalances(_ context.Context) ([]model.SellerBalanceRow, error) {
	return f.sellerBalances, nil
}

func (f *fakeReportRepo) MonthlyPaymentTrend(_ context.Context, months int) ([]model.MonthlyTrendPoint, error) {
	return f.monthlyTrend, nil
}

func (f *fakeReportRepo) TotalSales(_ context.Context) (decimal.Decimal, error) {
	return f.totalSales, nil
}

func (f *fakeReportRepo) TotalCostOfSold(_ context.Context) (decimal.Decimal, error) {
	return f.totalCostOfSold, nil
}

func (f *fakeReportRepo) SalesByMethod(_ context.Context) ([]model.MethodTotal, error) {
	return f.salesByMethod, nil
}

func (f *fakeReportRepo) InStockValue(_ context.Context) (decimal.Decimal, error) {
	return f.inStockValue, nil
}

func (f *fakeReportRepo) StockCounts(_ context.Context) ([]model.StatusCount, error) {
	return f.stockCounts, nil
}

func (f *fakeReportRepo) SellerStockBreakdown(_ context.Context) ([]model.SellerStockRow, error) {
	return f.sellerStockRows, nil
}

func (f *fakeReportRepo) SellerFinancials(_ context.Context, from, to *time.Time, sellerID *uuid.UUID) ([]model.SellerFinancialRow, error) {
	f.financialsFrom = from
	f.financialsTo = to
	f.financialsID = sellerID
	return f.sellerFinancials, nil
}

func (f *fakeReportRepo) PaymentTypeBreakdown(_ context.Context, from, to *time.Time) ([]model.PaymentTypeTotal, error) {
	return f.paymentTypes, nil
}

func (f *fakeReportRepo) ExportSnapshot(_ context.Context) (*model.ExportBundle, error) {
	return &model.ExportBundle{}, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := f.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}
