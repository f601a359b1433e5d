package repository

import (
	"context"
	"time"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings. Nil/empty fields are ignored.
type SaleFilter struct {
	SellerID      *uuid.UUID
	ExhibitionID  *uuid.UUID
	FromDate      *time.Time
	ToDate        *time.Time
	PaymentMethod string
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter SaleFilter, page, limit int) ([]model.Sale, int64, error)
	ClearExhibition(ctx context.Context, exhibitionID uuid.UUID) error
	DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Sale{}).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := GetDB(ctx, r.db).Preload("StockItem").Preload("StockItem.Seller").
		First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, filter SaleFilter, page, limit int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Sale{})
	if filter.SellerID != nil {
		query = query.Joins("JOIN stock_items ON stock_items.id = sales.stock_item_id").
			Where("stock_items.seller_id = ?", *filter.SellerID)
	}
	if filter.ExhibitionID != nil {
		query = query.Where("sales.exhibition_id = ?", *filter.ExhibitionID)
	}
	if filter.FromDate != nil {
		query = query.Where("sales.sale_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("sales.sale_date <= ?", *filter.ToDate)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("sales.payment_method = ?", filter.PaymentMethod)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("StockItem").Preload("StockItem.Seller").
		Order("sales.sale_date DESC, sales.created_at DESC").
		Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ClearExhibition detaches every sale from an exhibition before the exhibition
// row is removed. The sales and their financial effect stay intact.
func (r *saleRepository) ClearExhibition(ctx context.Context, exhibitionID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Sale{}).
		Where("exhibition_id = ?", exhibitionID).
		Update("exhibition_id", nil).Error
}

// DeleteBySeller removes every sale attached to the seller's stock items.
// Runs before the stock items themselves go, inside the seller delete
// transaction.
func (r *saleRepository) DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	sub := db.Model(&model.StockItem{}).Select("id").Where("seller_id = ?", sellerID)
	return db.Where("stock_item_id IN (?)", sub).Delete(&model.Sale{}).Error
}
