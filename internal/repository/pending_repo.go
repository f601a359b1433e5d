package repository

import (
	"context"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PendingRepository interface {
	Create(ctx context.Context, pending *model.PendingAmount) error
	Update(ctx context.Context, pending *model.PendingAmount) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PendingAmount, error)
	ListOpen(ctx context.Context) ([]model.PendingAmount, error)
	ListOpenBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.PendingAmount, error)
	DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error
}

type pendingRepository struct {
	db *gorm.DB
}

func NewPendingRepository(db *gorm.DB) PendingRepository {
	return &pendingRepository{db: db}
}

func (r *pendingRepository) Create(ctx context.Context, pending *model.PendingAmount) error {
	return GetDB(ctx, r.db).Create(pending).Error
}

func (r *pendingRepository) Update(ctx context.Context, pending *model.PendingAmount) error {
	return GetDB(ctx, r.db).Save(pending).Error
}

func (r *pendingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PendingAmount, error) {
	var pending model.PendingAmount
	if err := GetDB(ctx, r.db).First(&pending, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

// ListOpen returns every pending amount that is not yet fully paid, soonest
// due date first.
func (r *pendingRepository) ListOpen(ctx context.Context) ([]model.PendingAmount, error) {
	var rows []model.PendingAmount
	if err := GetDB(ctx, r.db).Preload("Seller").
		Where("status <> ?", model.PendingStatusPaid).
		Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pendingRepository) ListOpenBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.PendingAmount, error) {
	var rows []model.PendingAmount
	if err := GetDB(ctx, r.db).
		Where("seller_id = ? AND status <> ?", sellerID, model.PendingStatusPaid).
		Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pendingRepository) DeleteBySeller(ctx context.Context, sellerID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("seller_id = ?", sellerID).Delete(&model.PendingAmount{}).Error
}
