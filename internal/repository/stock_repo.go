package repository

import (
	"context"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	UpdateDetails(ctx context.Context, id uuid.UUID, itemName string, costPrice decimal.Decimal) error
	DeleteInStock(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, sellerID *uuid.UUID, status string, page, limit int) ([]model.StockItem, int64, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, item *model.StockItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

// UpdateDetails writes item_name and cost_price only. Status is owned by the
// sale operations and must never travel through this statement, even from a
// stale read.
func (r *stockRepository) UpdateDetails(ctx context.Context, id uuid.UUID, itemName string, costPrice decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.StockItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"item_name":  itemName,
			"cost_price": costPrice,
		}).Error
}

// DeleteInStock removes the item only while it is still in_stock, in a single
// conditional statement so a concurrent sale cannot slip between a status
// check and the delete. Returns the number of rows removed.
func (r *stockRepository) DeleteInStock(ctx context.Context, id uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("id = ? AND status = ?", id, model.StockStatusInStock).
		Delete(&model.StockItem{})
	return res.RowsAffected, res.Error
}

func (r *stockRepository) DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("seller_id = ?", sellerID).Delete(&model.StockItem{}).Error
}

func (r *stockRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	if err := GetDB(ctx, r.db).Preload("Seller").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate locks the row so the status check and the sale insert in
// RecordSale see a consistent item.
func (r *stockRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.StockItem{}).Where("id = ?", id).Update("status", status).Error
}

func (r *stockRepository) List(ctx context.Context, sellerID *uuid.UUID, status string, page, limit int) ([]model.StockItem, int64, error) {
	var items []model.StockItem
	var total int64

	query := GetDB(ctx, r.db).Model(&model.StockItem{})
	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Seller").Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
