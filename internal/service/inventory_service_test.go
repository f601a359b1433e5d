package service

import (
	"context"
	"errors"
	"testing"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newInventoryFixture() (InventoryService, *fakeStockRepo, *fakeSaleRepo, *fakeSellerRepo, *fakeExhibitionRepo) {
	stockRepo := newFakeStockRepo()
	saleRepo := newFakeSaleRepo()
	sellerRepo := newFakeSellerRepo()
	exhibitionRepo := newFakeExhibitionRepo()
	svc := NewInventoryService(stockRepo, saleRepo, sellerRepo, exhibitionRepo, &fakeTxManager{})
	return svc, stockRepo, saleRepo, sellerRepo, exhibitionRepo
}

func seedSeller(t *testing.T, repo *fakeSellerRepo) *model.Seller {
	t.Helper()
	seller := &model.Seller{
		Name:           "Ravi Textiles",
		InitialBalance: decimal.NewFromInt(5000),
		Status:         model.SellerStatusActive,
	}
	if err := repo.Create(context.Background(), seller); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return seller
}

func seedStockItem(t *testing.T, repo *fakeStockRepo, sellerID uuid.UUID, status string) *model.StockItem {
	t.Helper()
	item := &model.StockItem{
		SellerID:  sellerID,
		ItemName:  "Silk Saree",
		CostPrice: decimal.NewFromInt(100),
		Status:    status,
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed stock item: %v", err)
	}
	return item
}

func TestCreateStockItem(t *testing.T) {
	svc, _, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)

	item, err := svc.CreateStockItem(context.Background(), CreateStockItemRequest{
		SellerID:  seller.ID.String(),
		ItemName:  "Cotton Kurta",
		CostPrice: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("CreateStockItem: %v", err)
	}
	if item.Status != model.StockStatusInStock {
		t.Errorf("new item status = %q, want in_stock", item.Status)
	}
	if item.SellerID != seller.ID {
		t.Errorf("item seller = %s, want %s", item.SellerID, seller.ID)
	}
}

func TestCreateStockItemUnknownSeller(t *testing.T) {
	svc, _, _, _, _ := newInventoryFixture()

	_, err := svc.CreateStockItem(context.Background(), CreateStockItemRequest{
		SellerID:  uuid.NewString(),
		ItemName:  "Cotton Kurta",
		CostPrice: decimal.NewFromInt(250),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordSaleFlipsItemToSold(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	sale, err := svc.RecordSale(context.Background(), uuid.NewString(), RecordSaleRequest{
		StockItemID:  item.ID.String(),
		SellingPrice: decimal.NewFromInt(150),
		SaleDate:     "2026-08-15",
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if sale.PaymentMethod != model.PaymentMethodCash {
		t.Errorf("default payment method = %q, want cash", sale.PaymentMethod)
	}

	got, err := stockRepo.FindByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != model.StockStatusSold {
		t.Errorf("item status after sale = %q, want sold", got.Status)
	}
}

func TestRecordSaleAlreadySold(t *testing.T) {
	svc, stockRepo, saleRepo, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusSold)

	_, err := svc.RecordSale(context.Background(), "", RecordSaleRequest{
		StockItemID:  item.ID.String(),
		SellingPrice: decimal.NewFromInt(150),
		SaleDate:     "2026-08-15",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(saleRepo.sales) != 0 {
		t.Errorf("sale row created despite conflict")
	}
}

func TestRecordSaleValidation(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	cases := []struct {
		name string
		req  RecordSaleRequest
	}{
		{"bad id", RecordSaleRequest{StockItemID: "nope", SellingPrice: decimal.NewFromInt(1), SaleDate: "2026-08-15"}},
		{"negative price", RecordSaleRequest{StockItemID: item.ID.String(), SellingPrice: decimal.NewFromInt(-1), SaleDate: "2026-08-15"}},
		{"bad method", RecordSaleRequest{StockItemID: item.ID.String(), SellingPrice: decimal.NewFromInt(1), PaymentMethod: "card", SaleDate: "2026-08-15"}},
		{"bad date", RecordSaleRequest{StockItemID: item.ID.String(), SellingPrice: decimal.NewFromInt(1), SaleDate: "15/08/2026"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.RecordSale(context.Background(), "", tc.req); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRecordSaleUnknownExhibition(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	missing := uuid.NewString()
	_, err := svc.RecordSale(context.Background(), "", RecordSaleRequest{
		StockItemID:  item.ID.String(),
		SellingPrice: decimal.NewFromInt(120),
		SaleDate:     "2026-08-15",
		ExhibitionID: &missing,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSaleRestoresItem(t *testing.T) {
	svc, stockRepo, saleRepo, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	sale, err := svc.RecordSale(context.Background(), "", RecordSaleRequest{
		StockItemID:  item.ID.String(),
		SellingPrice: decimal.NewFromInt(150),
		SaleDate:     "2026-08-15",
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if err := svc.DeleteSale(context.Background(), sale.ID.String()); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}

	got, err := stockRepo.FindByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != model.StockStatusInStock {
		t.Errorf("item status after sale deletion = %q, want in_stock", got.Status)
	}
	if len(saleRepo.sales) != 0 {
		t.Errorf("sale row still present after deletion")
	}
}

func TestDeleteSaleNotFound(t *testing.T) {
	svc, _, _, _, _ := newInventoryFixture()

	if err := svc.DeleteSale(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteStockItemRefusesSold(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusSold)

	if err := svc.DeleteStockItem(context.Background(), item.ID.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if _, err := stockRepo.FindByID(context.Background(), item.ID); err != nil {
		t.Errorf("sold item was deleted")
	}
}

func TestDeleteStockItemInStock(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	if err := svc.DeleteStockItem(context.Background(), item.ID.String()); err != nil {
		t.Fatalf("DeleteStockItem: %v", err)
	}
	if _, ok := stockRepo.items[item.ID]; ok {
		t.Errorf("item still present after deletion")
	}
}

func TestUpdateStockItemPatchSemantics(t *testing.T) {
	svc, stockRepo, _, sellerRepo, _ := newInventoryFixture()
	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusInStock)

	newPrice := decimal.NewFromInt(175)
	updated, err := svc.UpdateStockItem(context.Background(), item.ID.String(), UpdateStockItemRequest{
		CostPrice: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateStockItem: %v", err)
	}
	if updated.ItemName != item.ItemName {
		t.Errorf("item_name changed without being supplied")
	}
	if !updated.CostPrice.Equal(newPrice) {
		t.Errorf("cost_price = %s, want %s", updated.CostPrice, newPrice)
	}
}

// staleStockReads serves reads that predate a sale committing on the same
// item: FindByID always reports in_stock while the backing store holds the
// real status.
type staleStockReads struct {
	*fakeStockRepo
}

func (r *staleStockReads) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	item, err := r.fakeStockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Status = model.StockStatusInStock
	return item, nil
}

func TestUpdateStockItemKeepsStatusSoldUnderConcurrentSale(t *testing.T) {
	stockRepo := newFakeStockRepo()
	sellerRepo := newFakeSellerRepo()
	svc := NewInventoryService(&staleStockReads{stockRepo}, newFakeSaleRepo(), sellerRepo, newFakeExhibitionRepo(), &fakeTxManager{})

	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusSold)

	name := "Silk Dupatta"
	if _, err := svc.UpdateStockItem(context.Background(), item.ID.String(), UpdateStockItemRequest{
		ItemName: &name,
	}); err != nil {
		t.Fatalf("UpdateStockItem: %v", err)
	}

	stored := stockRepo.items[item.ID]
	if stored.Status != model.StockStatusSold {
		t.Errorf("status = %q after a name patch, want sold", stored.Status)
	}
	if stored.ItemName != name {
		t.Errorf("item_name = %q, want %q", stored.ItemName, name)
	}
}

func TestDeleteStockItemRefusesConcurrentlySoldItem(t *testing.T) {
	stockRepo := newFakeStockRepo()
	sellerRepo := newFakeSellerRepo()
	svc := NewInventoryService(&staleStockReads{stockRepo}, newFakeSaleRepo(), sellerRepo, newFakeExhibitionRepo(), &fakeTxManager{})

	seller := seedSeller(t, sellerRepo)
	item := seedStockItem(t, stockRepo, seller.ID, model.StockStatusSold)

	if err := svc.DeleteStockItem(context.Background(), item.ID.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if _, ok := stockRepo.items[item.ID]; !ok {
		t.Errorf("sold item was deleted out from under its sale")
	}
}

func TestListStockRejectsBadStatus(t *testing.T) {
	svc, _, _, _, _ := newInventoryFixture()

	if _, _, err := svc.ListStock(context.Background(), "", "missing", 1, 20); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
