package repository

import (
	"context"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExhibitionRepository interface {
	Create(ctx context.Context, exhibition *model.Exhibition) error
	Update(ctx context.Context, exhibition *model.Exhibition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Exhibition, error)
	ListWithPerformance(ctx context.Context, status string) ([]model.ExhibitionPerformanceRow, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type exhibitionRepository struct {
	db *gorm.DB
}

func NewExhibitionRepository(db *gorm.DB) ExhibitionRepository {
	return &exhibitionRepository{db: db}
}

func (r *exhibitionRepository) Create(ctx context.Context, exhibition *model.Exhibition) error {
	return GetDB(ctx, r.db).Create(exhibition).Error
}

func (r *exhibitionRepository) Update(ctx context.Context, exhibition *model.Exhibition) error {
	return GetDB(ctx, r.db).Save(exhibition).Error
}

func (r *exhibitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Exhibition{}).Error
}

func (r *exhibitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Exhibition, error) {
	var exhibition model.Exhibition
	if err := GetDB(ctx, r.db).First(&exhibition, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exhibition, nil
}

// ListWithPerformance returns exhibitions with their attached sales totals.
// Exhibitions without sales report zero count and zero sums.
func (r *exhibitionRepository) ListWithPerformance(ctx context.Context, status string) ([]model.ExhibitionPerformanceRow, error) {
	var rows []model.ExhibitionPerformanceRow

	query := GetDB(ctx, r.db).Table("exhibitions e").
		Select(`e.*, COUNT(s.id) AS sales_count,
			COALESCE(SUM(s.selling_price), 0) AS total_sales,
			COALESCE(SUM(s.selling_price - si.cost_price), 0) AS total_profit`).
		Joins("LEFT JOIN sales s ON s.exhibition_id = e.id").
		Joins("LEFT JOIN stock_items si ON si.id = s.stock_item_id")
	if status != "" {
		query = query.Where("e.status = ?", status)
	}

	if err := query.Group("e.id").Order("e.start_date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *exhibitionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Exhibition{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
