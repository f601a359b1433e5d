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

type CreateExhibitionRequest struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

type UpdateExhibitionRequest struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status"`
}

// ExhibitionDetail is an exhibition together with every sale attached to it.
type ExhibitionDetail struct {
	model.Exhibition
	Sales []model.Sale `json:"sales"`
}

// ExhibitionSummary aggregates counts and the sales totals of all sales that
// happened during any exhibition.
type ExhibitionSummary struct {
	TotalExhibitions    int64           `json:"totalExhibitions"`
	ActiveExhibitions   int64           `json:"activeExhibitions"`
	UpcomingExhibitions int64           `json:"upcomingExhibitions"`
	TotalSales          decimal.Decimal `json:"totalSales"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
}

// --- Interface ---

type ExhibitionService interface {
	CreateExhibition(ctx context.Context, req CreateExhibitionRequest) (*model.Exhibition, error)
	UpdateExhibition(ctx context.Context, id string, req UpdateExhibitionRequest) (*model.Exhibition, error)
	DeleteExhibition(ctx context.Context, id string) error
	ListExhibitions(ctx context.Context, status string) ([]model.ExhibitionPerformanceRow, error)
	GetExhibitionDetail(ctx context.Context, id string) (*ExhibitionDetail, error)
	GetSummary(ctx context.Context) (*ExhibitionSummary, error)
}

type exhibitionService struct {
	exhibitionRepo repository.ExhibitionRepository
	saleRepo       repository.SaleRepository
	txManager      repository.TransactionManager
}

func NewExhibitionService(
	exhibitionRepo repository.ExhibitionRepository,
	saleRepo repository.SaleRepository,
	txManager repository.TransactionManager,
) ExhibitionService {
	return &exhibitionService{
		exhibitionRepo: exhibitionRepo,
		saleRepo:       saleRepo,
		txManager:      txManager,
	}
}

// exhibitionSalesLimit bounds the sale list embedded in a detail response.
const exhibitionSalesLimit = 200

var validExhibitionStatuses = map[string]bool{
	model.ExhibitionStatusUpcoming:  true,
	model.ExhibitionStatusActive:    true,
	model.ExhibitionStatusCompleted: true,
}

func (s *exhibitionService) CreateExhibition(ctx context.Context, req CreateExhibitionRequest) (*model.Exhibition, error) {
	status := req.Status
	if status == "" {
		status = model.ExhibitionStatusUpcoming
	}
	if !validExhibitionStatuses[status] {
		return nil, fmt.Errorf("status must be one of upcoming, active, completed: %w", ErrValidation)
	}

	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	exhibition := &model.Exhibition{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     req.Notes,
		Status:    status,
	}
	if err := s.exhibitionRepo.Create(ctx, exhibition); err != nil {
		return nil, fmt.Errorf("failed to create exhibition: %w", err)
	}
	return exhibition, nil
}

func (s *exhibitionService) UpdateExhibition(ctx context.Context, id string, req UpdateExhibitionRequest) (*model.Exhibition, error) {
	exhibitionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid exhibition id: %w", ErrValidation)
	}

	exhibition, err := s.exhibitionRepo.FindByID(ctx, exhibitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exhibition %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load exhibition: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		exhibition.Name = *req.Name
	}
	if req.Location != nil {
		exhibition.Location = *req.Location
	}
	if req.StartDate != nil {
		parsed, err := parseOptionalDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		exhibition.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := parseOptionalDate("end_date", *req.EndDate)
		if err != nil {
			return nil, err
		}
		exhibition.EndDate = parsed
	}
	if req.Notes != nil {
		exhibition.Notes = *req.Notes
	}
	if req.Status != nil {
		if !validExhibitionStatuses[*req.Status] {
			return nil, fmt.Errorf("status must be one of upcoming, active, completed: %w", ErrValidation)
		}
		exhibition.Status = *req.Status
	}

	if err := s.exhibitionRepo.Update(ctx, exhibition); err != nil {
		return nil, fmt.Errorf("failed to update exhibition: %w", err)
	}
	return exhibition, nil
}

// DeleteExhibition detaches every sale first, then removes the exhibition, in
// one transaction. The sales and their financial effect are untouched.
func (s *exhibitionService) DeleteExhibition(ctx context.Context, id string) error {
	exhibitionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid exhibition id: %w", ErrValidation)
	}

	if _, err := s.exhibitionRepo.FindByID(ctx, exhibitionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("exhibition %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load exhibition: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.ClearExhibition(txCtx, exhibitionID); err != nil {
			return fmt.Errorf("failed to detach sales: %w", err)
		}
		if err := s.exhibitionRepo.Delete(txCtx, exhibitionID); err != nil {
			return fmt.Errorf("failed to delete exhibition: %w", err)
		}
		return nil
	})
}

func (s *exhibitionService) ListExhibitions(ctx context.Context, status string) ([]model.ExhibitionPerformanceRow, error) {
	if status != "" && !validExhibitionStatuses[status] {
		return nil, fmt.Errorf("status must be one of upcoming, active, completed: %w", ErrValidation)
	}
	return s.exhibitionRepo.ListWithPerformance(ctx, status)
}

func (s *exhibitionService) GetExhibitionDetail(ctx context.Context, id string) (*ExhibitionDetail, error) {
	exhibitionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid exhibition id: %w", ErrValidation)
	}

	exhibition, err := s.exhibitionRepo.FindByID(ctx, exhibitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exhibition %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load exhibition: %w", err)
	}

	sales, _, err := s.saleRepo.List(ctx, repository.SaleFilter{ExhibitionID: &exhibitionID}, 1, exhibitionSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load exhibition sales: %w", err)
	}

	return &ExhibitionDetail{Exhibition: *exhibition, Sales: sales}, nil
}

func (s *exhibitionService) GetSummary(ctx context.Context) (*ExhibitionSummary, error) {
	total, err := s.exhibitionRepo.CountByStatus(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count exhibitions: %w", err)
	}
	active, err := s.exhibitionRepo.CountByStatus(ctx, model.ExhibitionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active exhibitions: %w", err)
	}
	upcoming, err := s.exhibitionRepo.CountByStatus(ctx, model.ExhibitionStatusUpcoming)
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming exhibitions: %w", err)
	}

	rows, err := s.exhibitionRepo.ListWithPerformance(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load exhibition performance: %w", err)
	}

	summary := &ExhibitionSummary{
		TotalExhibitions:    total,
		ActiveExhibitions:   active,
		UpcomingExhibitions: upcoming,
		TotalSales:          decimal.Zero,
		TotalProfit:         decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalSales = summary.TotalSales.Add(row.TotalSales)
		summary.TotalProfit = summary.TotalProfit.Add(row.TotalProfit)
	}
	return summary, nil
}
