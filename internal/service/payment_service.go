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

// CreatePaymentRequest carries both JSON and multipart form fields; the
// optional receipt image travels outside this struct as an opaque path the
// handler resolved after storing the upload.
type CreatePaymentRequest struct {
	SellerID        string          `json:"seller_id" form:"seller_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" form:"amount" binding:"required"`
	PaymentDate     string          `json:"payment_date" form:"payment_date" binding:"required"`
	PaymentType     string          `json:"payment_type" form:"payment_type"`
	ReferenceNumber string          `json:"reference_number" form:"reference_number"`
	Notes           string          `json:"notes" form:"notes"`
}

type UpdatePaymentRequest struct {
	Amount          *decimal.Decimal `json:"amount" form:"amount"`
	PaymentDate     *string          `json:"payment_date" form:"payment_date"`
	PaymentType     *string          `json:"payment_type" form:"payment_type"`
	ReferenceNumber *string          `json:"reference_number" form:"reference_number"`
	Notes           *string          `json:"notes" form:"notes"`
}

type CreatePendingRequest struct {
	SellerID    string          `json:"seller_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     string          `json:"due_date"`
	Description string          `json:"description"`
}

type UpdatePendingRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"due_date"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
}

// --- Interface ---

type PaymentService interface {
	RecordPayment(ctx context.Context, userID string, req CreatePaymentRequest, imagePath *string) (*model.Payment, error)
	UpdatePayment(ctx context.Context, id string, req UpdatePaymentRequest, newImagePath *string, clearImage bool) (*model.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, filter repository.PaymentFilter, page, limit int) ([]model.Payment, int64, error)
	RecordPending(ctx context.Context, req CreatePendingRequest) (*model.PendingAmount, error)
	UpdatePending(ctx context.Context, id string, req UpdatePendingRequest) (*model.PendingAmount, error)
	ListOpenPending(ctx context.Context) ([]model.PendingAmount, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	pendingRepo repository.PendingRepository
	sellerRepo  repository.SellerRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	pendingRepo repository.PendingRepository,
	sellerRepo repository.SellerRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		pendingRepo: pendingRepo,
		sellerRepo:  sellerRepo,
	}
}

var validPaymentTypes = map[string]bool{
	model.PaymentTypeCash:         true,
	model.PaymentTypeBankTransfer: true,
	model.PaymentTypeUPI:          true,
	model.PaymentTypeCheque:       true,
}

var validPendingStatuses = map[string]bool{
	model.PendingStatusPending: true,
	model.PendingStatusPartial: true,
	model.PendingStatusPaid:    true,
}

// --- Payments ---

func (s *paymentService) RecordPayment(ctx context.Context, userID string, req CreatePaymentRequest, imagePath *string) (*model.Payment, error) {
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, fmt.Errorf("invalid seller_id: %w", ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = model.PaymentTypeCash
	}
	if !validPaymentTypes[paymentType] {
		return nil, fmt.Errorf("payment_type must be one of cash, bank_transfer, upi, cheque: %w", ErrValidation)
	}

	paymentDate, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller %s: %w", req.SellerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify seller: %w", err)
	}

	var recordedBy *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		recordedBy = &parsed
	}

	payment := &model.Payment{
		SellerID:        sellerID,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		PaymentType:     paymentType,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		ImagePath:       imagePath,
		RecordedBy:      recordedBy,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, nil
}

// UpdatePayment patches only the supplied fields. newImagePath replaces the
// receipt reference; clearImage drops it; when neither is set the stored
// reference stays untouched.
func (s *paymentService) UpdatePayment(ctx context.Context, id string, req UpdatePaymentRequest, newImagePath *string, clearImage bool) (*model.Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id: %w", ErrValidation)
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		parsed, err := parseDate("payment_date", *req.PaymentDate)
		if err != nil {
			return nil, err
		}
		payment.PaymentDate = parsed
	}
	if req.PaymentType != nil {
		if !validPaymentTypes[*req.PaymentType] {
			return nil, fmt.Errorf("payment_type must be one of cash, bank_transfer, upi, cheque: %w", ErrValidation)
		}
		payment.PaymentType = *req.PaymentType
	}
	if req.ReferenceNumber != nil {
		payment.ReferenceNumber = *req.ReferenceNumber
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	if newImagePath != nil {
		payment.ImagePath = newImagePath
	} else if clearImage {
		payment.ImagePath = nil
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid payment id: %w", ErrValidation)
	}
	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("payment %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter, page, limit int) ([]model.Payment, int64, error) {
	return s.paymentRepo.List(ctx, filter, page, limit)
}

// --- Pending amounts ---

func (s *paymentService) RecordPending(ctx context.Context, req CreatePendingRequest) (*model.PendingAmount, error) {
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, fmt.Errorf("invalid seller_id: %w", ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
	}

	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller %s: %w", req.SellerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify seller: %w", err)
	}

	pending := &model.PendingAmount{
		SellerID:    sellerID,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Description: req.Description,
		Status:      model.PendingStatusPending,
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to record pending amount: %w", err)
	}
	return pending, nil
}

func (s *paymentService) UpdatePending(ctx context.Context, id string, req UpdatePendingRequest) (*model.PendingAmount, error) {
	pendingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid pending amount id: %w", ErrValidation)
	}

	pending, err := s.pendingRepo.FindByID(ctx, pendingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pending amount %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load pending amount: %w", err)
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", ErrValidation)
		}
		pending.Amount = *req.Amount
	}
	if req.DueDate != nil {
		parsed, err := parseOptionalDate("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		pending.DueDate = parsed
	}
	if req.Description != nil {
		pending.Description = *req.Description
	}
	if req.Status != nil {
		if !validPendingStatuses[*req.Status] {
			return nil, fmt.Errorf("status must be one of pending, partial, paid: %w", ErrValidation)
		}
		pending.Status = *req.Status
	}

	if err := s.pendingRepo.Update(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to update pending amount: %w", err)
	}
	return pending, nil
}

func (s *paymentService) ListOpenPending(ctx context.Context) ([]model.PendingAmount, error) {
	return s.pendingRepo.ListOpen(ctx)
}
