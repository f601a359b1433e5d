package service

import (
	"context"
	"errors"
	"fmt"

	"sellersync/internal/model"
	"sellersync/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateStockItemRequest struct {
	SellerID  string          `json:"seller_id" binding:"required"`
	ItemName  string          `json:"item_name" binding:"required"`
	CostPrice decimal.Decimal `json:"cost_price" binding:"required"`
}

type UpdateStockItemRequest struct {
	ItemName  *string          `json:"item_name"`
	CostPrice *decimal.Decimal `json:"cost_price"`
}

type RecordSaleRequest struct {
	StockItemID   string          `json:"stock_item_id" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	SaleDate      string          `json:"sale_date" binding:"required"`
	Notes         string          `json:"notes"`
	ExhibitionID  *string         `json:"exhibition_id"`
}

// --- Interface ---

// InventoryService owns the stock item lifecycle. The in_stock/sold status is
// mutated in exactly two places, RecordSale and DeleteSale, each paired with
// its sale row change inside one transaction; nothing else may touch it.
type InventoryService interface {
	CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*model.StockItem, error)
	UpdateStockItem(ctx context.Context, id string, req UpdateStockItemRequest) (*model.StockItem, error)
	DeleteStockItem(ctx context.Context, id string) error
	ListStock(ctx context.Context, sellerID, status string, page, limit int) ([]model.StockItem, int64, error)
	RecordSale(ctx context.Context, userID string, req RecordSaleRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, id string) error
	ListSales(ctx context.Context, filter repository.SaleFilter, page, limit int) ([]model.Sale, int64, error)
}

type inventoryService struct {
	stockRepo      repository.StockRepository
	saleRepo       repository.SaleRepository
	sellerRepo     repository.SellerRepository
	exhibitionRepo repository.ExhibitionRepository
	txManager      repository.TransactionManager
}

func NewInventoryService(
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	sellerRepo repository.SellerRepository,
	exhibitionRepo repository.ExhibitionRepository,
	txManager repository.TransactionManager,
) InventoryService {
	return &inventoryService{
		stockRepo:      stockRepo,
		saleRepo:       saleRepo,
		sellerRepo:     sellerRepo,
		exhibitionRepo: exhibitionRepo,
		txManager:      txManager,
	}
}

var validPaymentMethods = map[string]bool{
	model.PaymentMethodCash:   true,
	model.PaymentMethodOnline: true,
}

// --- Stock items ---

func (s *inventoryService) CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*model.StockItem, error) {
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, fmt.Errorf("invalid seller_id: %w", ErrValidation)
	}
	if req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("cost_price must not be negative: %w", ErrValidation)
	}

	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller %s: %w", req.SellerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify seller: %w", err)
	}

	item := &model.StockItem{
		SellerID:  sellerID,
		ItemName:  req.ItemName,
		CostPrice: req.CostPrice,
		Status:    model.StockStatusInStock,
	}
	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create stock item: %w", err)
	}
	return item, nil
}

// UpdateStockItem patches item_name and cost_price only. Status is off limits
// here; only the sale operations may flip it.
func (s *inventoryService) UpdateStockItem(ctx context.Context, id string, req UpdateStockItemRequest) (*model.StockItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid stock item id: %w", ErrValidation)
	}

	item, err := s.stockRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("stock item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load stock item: %w", err)
	}

	if req.ItemName != nil {
		if *req.ItemName == "" {
			return nil, fmt.Errorf("item_name cannot be empty: %w", ErrValidation)
		}
		item.ItemName = *req.ItemName
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("cost_price must not be negative: %w", ErrValidation)
		}
		item.CostPrice = *req.CostPrice
	}

	// Column-limited write: a sale may have flipped the status since the read
	// above, and writing the whole row back would clobber it.
	if err := s.stockRepo.UpdateDetails(ctx, itemID, item.ItemName, item.CostPrice); err != nil {
		return nil, fmt.Errorf("failed to update stock item: %w", err)
	}
	return item, nil
}

// DeleteStockItem removes an item only while it is in_stock. A sold item is
// referenced by its sale and must keep existing until the sale is deleted.
func (s *inventoryService) DeleteStockItem(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid stock item id: %w", ErrValidation)
	}

	// The status condition lives inside the delete statement, so an item that
	// becomes sold while the request is in flight survives with its sale.
	rows, err := s.stockRepo.DeleteInStock(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	if rows == 0 {
		if _, err := s.stockRepo.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stock item %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load stock item: %w", err)
		}
		return fmt.Errorf("stock item %s is sold: %w", id, ErrConflict)
	}
	return nil
}

func (s *inventoryService) ListStock(ctx context.Context, sellerID, status string, page, limit int) ([]model.StockItem, int64, error) {
	var sellerFilter *uuid.UUID
	if sellerID != "" {
		parsed, err := uuid.Parse(sellerID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid seller_id: %w", ErrValidation)
		}
		sellerFilter = &parsed
	}
	if status != "" && status != model.StockStatusInStock && status != model.StockStatusSold {
		return nil, 0, fmt.Errorf("status must be in_stock or sold: %w", ErrValidation)
	}
	return s.stockRepo.List(ctx, sellerFilter, status, page, limit)
}

// --- Sales ---

// RecordSale inserts the sale row and flips the item to sold in one
// transaction. The item row is locked first so a concurrent sale of the same
// item observes the status change and fails on the conflict.
func (s *inventoryService) RecordSale(ctx context.Context, userID string, req RecordSaleRequest) (*model.Sale, error) {
	itemID, err := uuid.Parse(req.StockItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid stock_item_id: %w", ErrValidation)
	}
	if req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("selling_price must not be negative: %w", ErrValidation)
	}

	method := req.PaymentMethod
	if method == "" {
		method = model.PaymentMethodCash
	}
	if !validPaymentMethods[method] {
		return nil, fmt.Errorf("payment_method must be cash or online: %w", ErrValidation)
	}

	saleDate, err := parseDate("sale_date", req.SaleDate)
	if err != nil {
		return nil, err
	}

	var exhibitionID *uuid.UUID
	if req.ExhibitionID != nil && *req.ExhibitionID != "" {
		parsed, err := uuid.Parse(*req.ExhibitionID)
		if err != nil {
			return nil, fmt.Errorf("invalid exhibition_id: %w", ErrValidation)
		}
		if _, err := s.exhibitionRepo.FindByID(ctx, parsed); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("exhibition %s: %w", *req.ExhibitionID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify exhibition: %w", err)
		}
		exhibitionID = &parsed
	}

	var recordedBy *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		recordedBy = &parsed
	}

	var sale *model.Sale
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.stockRepo.FindByIDForUpdate(txCtx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stock item %s: %w", req.StockItemID, ErrNotFound)
			}
			return fmt.Errorf("failed to load stock item: %w", err)
		}
		if item.Status != model.StockStatusInStock {
			return fmt.Errorf("stock item %s already sold: %w", req.StockItemID, ErrConflict)
		}

		sale = &model.Sale{
			StockItemID:   itemID,
			SellingPrice:  req.SellingPrice,
			PaymentMethod: method,
			SaleDate:      saleDate,
			Notes:         req.Notes,
			ExhibitionID:  exhibitionID,
			RecordedBy:    recordedBy,
		}
		if err := s.saleRepo.Create(txCtx, sale); err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		if err := s.stockRepo.UpdateStatus(txCtx, itemID, model.StockStatusSold); err != nil {
			return fmt.Errorf("failed to mark item sold: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes the sale and restores its stock item to in_stock, again
// as a single transaction so the item can never end up sold without a sale.
func (s *inventoryService) DeleteSale(ctx context.Context, id string) error {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid sale id: %w", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		sale, err := s.saleRepo.FindByID(txCtx, saleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("sale %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load sale: %w", err)
		}

		if err := s.saleRepo.Delete(txCtx, saleID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		if err := s.stockRepo.UpdateStatus(txCtx, sale.StockItemID, model.StockStatusInStock); err != nil {
			return fmt.Errorf("failed to restore stock item: %w", err)
		}
		return nil
	})
}

func (s *inventoryService) ListSales(ctx context.Context, filter repository.SaleFilter, page, limit int) ([]model.Sale, int64, error) {
	return s.saleRepo.List(ctx, filter, page, limit)
}
