package repository

import (
	"context"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *model.Seller) error
	Update(ctx context.Context, seller *model.Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error)
	List(ctx context.Context, status, search string, page, limit int) ([]model.Seller, int64, error)
	BalanceRow(ctx context.Context, id uuid.UUID) (*model.SellerBalanceRow, error)
	BalanceRows(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.SellerBalanceRow, error)
}

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) Create(ctx context.Context, seller *model.Seller) error {
	return GetDB(ctx, r.db).Create(seller).Error
}

func (r *sellerRepository) Update(ctx context.Context, seller *model.Seller) error {
	return GetDB(ctx, r.db).Save(seller).Error
}

func (r *sellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Seller{}).Error
}

func (r *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error) {
	var seller model.Seller
	if err := GetDB(ctx, r.db).First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepository) List(ctx context.Context, status, search string, page, limit int) ([]model.Seller, int64, error) {
	var sellers []model.Seller
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Seller{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR location ILIKE ? OR contact_person ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&sellers).Error; err != nil {
		return nil, 0, err
	}

	return sellers, total, nil
}

// BalanceRow returns one seller's aggregate payment and pending totals with
// zero defaults when the seller has no payments or pending rows.
func (r *sellerRepository) BalanceRow(ctx context.Context, id uuid.UUID) (*model.SellerBalanceRow, error) {
	var row model.SellerBalanceRow
	err := GetDB(ctx, r.db).Raw(`
		SELECT s.id AS seller_id, s.name, s.initial_balance,
		       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.seller_id = s.id), 0) AS total_payments,
		       COALESCE((SELECT SUM(pa.amount) FROM pending_amounts pa WHERE pa.seller_id = s.id AND pa.status <> ?), 0) AS pending_amount
		FROM sellers s
		WHERE s.id = ? AND s.deleted_at IS NULL
	`, model.PendingStatusPaid, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.SellerID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// BalanceRows returns the aggregate rows for a page of sellers in one query.
func (r *sellerRepository) BalanceRows(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.SellerBalanceRow, error) {
	out := make(map[uuid.UUID]model.SellerBalanceRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []model.SellerBalanceRow
	err := GetDB(ctx, r.db).Raw(`
		SELECT s.id AS seller_id, s.name, s.initial_balance,
		       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.seller_id = s.id), 0) AS total_payments,
		       COALESCE((SELECT SUM(pa.amount) FROM pending_amounts pa WHERE pa.seller_id = s.id AND pa.status <> ?), 0) AS pending_amount
		FROM sellers s
		WHERE s.id IN ? AND s.deleted_at IS NULL
	`, model.PendingStatusPaid, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, err := uuid.Parse(row.SellerID)
		if err != nil {
			continue
		}
		out[id] = row
	}
	return out, nil
}
