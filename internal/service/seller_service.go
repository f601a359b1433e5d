package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"sellersync/internal/model"
	"sellersync/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateSellerRequest struct {
	Name           string          `json:"name" binding:"required"`
	Location       string          `json:"location"`
	ContactPerson  string          `json:"contact_person"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Notes          string          `json:"notes"`
}

type UpdateSellerRequest struct {
	Name           *string          `json:"name"`
	Location       *string          `json:"location"`
	ContactPerson  *string          `json:"contact_person"`
	Phone          *string          `json:"phone"`
	Email          *string          `json:"email"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
	Notes          *string          `json:"notes"`
	Status         *string          `json:"status"`
}

// SellerListRow is one seller in a paginated listing, carrying the payment and
// pending totals the listing screens show alongside each row.
type SellerListRow struct {
	model.Seller
	TotalPayments    decimal.Decimal `json:"total_payments"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	BalanceRemaining decimal.Decimal `json:"balance_remaining"`
}

// SellerDetail is the seller record plus its derived balances, recent payments
// and open pending amounts.
type SellerDetail struct {
	model.Seller
	TotalPayments    decimal.Decimal       `json:"total_payments"`
	PendingAmount    decimal.Decimal       `json:"pending_amount"`
	BalanceRemaining decimal.Decimal       `json:"balance_remaining"`
	RecentPayments   []model.Payment       `json:"recent_payments"`
	PendingDetails   []model.PendingAmount `json:"pending_details"`
}

// --- Interface ---

type SellerService interface {
	CreateSeller(ctx context.Context, req CreateSellerRequest) (*model.Seller, error)
	UpdateSeller(ctx context.Context, id string, req UpdateSellerRequest) (*model.Seller, error)
	DeleteSeller(ctx context.Context, id string) error
	ListSellers(ctx context.Context, status, search string, page, limit int) ([]SellerListRow, int64, error)
	GetSellerDetail(ctx context.Context, id string) (*SellerDetail, error)
}

type sellerService struct {
	sellerRepo  repository.SellerRepository
	paymentRepo repository.PaymentRepository
	pendingRepo repository.PendingRepository
	stockRepo   repository.StockRepository
	saleRepo    repository.SaleRepository
	txManager   repository.TransactionManager
}

func NewSellerService(
	sellerRepo repository.SellerRepository,
	paymentRepo repository.PaymentRepository,
	pendingRepo repository.PendingRepository,
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	txManager repository.TransactionManager,
) SellerService {
	return &sellerService{
		sellerRepo:  sellerRepo,
		paymentRepo: paymentRepo,
		pendingRepo: pendingRepo,
		stockRepo:   stockRepo,
		saleRepo:    saleRepo,
		txManager:   txManager,
	}
}

// recentPaymentLimit caps the payments embedded in a seller detail response.
const recentPaymentLimit = 10

var validSellerStatuses = map[string]bool{
	model.SellerStatusActive:   true,
	model.SellerStatusInactive: true,
}

func (s *sellerService) CreateSeller(ctx context.Context, req CreateSellerRequest) (*model.Seller, error) {
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
		}
	}

	seller := &model.Seller{
		Name:           req.Name,
		Location:       req.Location,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Email:          req.Email,
		InitialBalance: req.InitialBalance,
		Notes:          req.Notes,
		Status:         model.SellerStatusActive,
	}
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}
	return seller, nil
}

func (s *sellerService) UpdateSeller(ctx context.Context, id string, req UpdateSellerRequest) (*model.Seller, error) {
	sellerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid seller id: %w", ErrValidation)
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		seller.Name = *req.Name
	}
	if req.Location != nil {
		seller.Location = *req.Location
	}
	if req.ContactPerson != nil {
		seller.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		seller.Phone = *req.Phone
	}
	if req.Email != nil {
		if *req.Email != "" {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
			}
		}
		seller.Email = *req.Email
	}
	if req.InitialBalance != nil {
		seller.InitialBalance = *req.InitialBalance
	}
	if req.Notes != nil {
		seller.Notes = *req.Notes
	}
	if req.Status != nil {
		if !validSellerStatuses[*req.Status] {
			return nil, fmt.Errorf("status must be active or inactive: %w", ErrValidation)
		}
		seller.Status = *req.Status
	}

	if err := s.sellerRepo.Update(ctx, seller); err != nil {
		return nil, fmt.Errorf("failed to update seller: %w", err)
	}
	return seller, nil
}

func (s *sellerService) DeleteSeller(ctx context.Context, id string) error {
	sellerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid seller id: %w", ErrValidation)
	}
	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seller %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load seller: %w", err)
	}

	// Cascade: a seller leaves the books together with every row that feeds
	// the ledger sums, so cash_in_hand stays consistent over the live sellers.
	// Sales go first while the stock items they reference still exist.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.DeleteBySeller(txCtx, sellerID); err != nil {
			return fmt.Errorf("failed to delete seller sales: %w", err)
		}
		if err := s.stockRepo.DeleteBySeller(txCtx, sellerID); err != nil {
			return fmt.Errorf("failed to delete seller stock: %w", err)
		}
		if err := s.paymentRepo.DeleteBySeller(txCtx, sellerID); err != nil {
			return fmt.Errorf("failed to delete seller payments: %w", err)
		}
		if err := s.pendingRepo.DeleteBySeller(txCtx, sellerID); err != nil {
			return fmt.Errorf("failed to delete seller pending amounts: %w", err)
		}
		if err := s.sellerRepo.Delete(txCtx, sellerID); err != nil {
			return fmt.Errorf("failed to delete seller: %w", err)
		}
		return nil
	})
	return err
}

func (s *sellerService) ListSellers(ctx context.Context, status, search string, page, limit int) ([]SellerListRow, int64, error) {
	if status != "" && !validSellerStatuses[status] {
		return nil, 0, fmt.Errorf("status must be active or inactive: %w", ErrValidation)
	}

	sellers, total, err := s.sellerRepo.List(ctx, status, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(sellers))
	for _, seller := range sellers {
		ids = append(ids, seller.ID)
	}
	balances, err := s.sellerRepo.BalanceRows(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load seller balances: %w", err)
	}

	rows := make([]SellerListRow, 0, len(sellers))
	for _, seller := range sellers {
		row := SellerListRow{Seller: seller}
		if balance, ok := balances[seller.ID]; ok {
			row.TotalPayments = balance.TotalPayments
			row.PendingAmount = balance.PendingAmount
		}
		row.BalanceRemaining = seller.InitialBalance.Sub(row.TotalPayments)
		rows = append(rows, row)
	}
	return rows, total, nil
}

// GetSellerDetail assembles the seller record with its derived figures.
// balance_remaining = initial_balance − Σ payments for this seller.
func (s *sellerService) GetSellerDetail(ctx context.Context, id string) (*SellerDetail, error) {
	sellerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid seller id: %w", ErrValidation)
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}

	balance, err := s.sellerRepo.BalanceRow(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller balances: %w", err)
	}

	recent, err := s.paymentRepo.RecentBySeller(ctx, sellerID, recentPaymentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent payments: %w", err)
	}

	pending, err := s.pendingRepo.ListOpenBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending amounts: %w", err)
	}

	return &SellerDetail{
		Seller:           *seller,
		TotalPayments:    balance.TotalPayments,
		PendingAmount:    balance.PendingAmount,
		BalanceRemaining: seller.InitialBalance.Sub(balance.TotalPayments),
		RecentPayments:   recent,
		PendingDetails:   pending,
	}, nil
}
