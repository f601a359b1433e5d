package service

import (
	"context"
	"errors"
	"testing"

	"sellersync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newPaymentFixture() (PaymentService, *fakePaymentRepo, *fakePendingRepo, *fakeSellerRepo) {
	paymentRepo := newFakePaymentRepo()
	pendingRepo := newFakePendingRepo()
	sellerRepo := newFakeSellerRepo()
	svc := NewPaymentService(paymentRepo, pendingRepo, sellerRepo)
	return svc, paymentRepo, pendingRepo, sellerRepo
}

func TestRecordPayment(t *testing.T) {
	svc, _, _, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	image := "/uploads/receipts/abc.jpg"
	payment, err := svc.RecordPayment(context.Background(), uuid.NewString(), CreatePaymentRequest{
		SellerID:    seller.ID.String(),
		Amount:      decimal.NewFromInt(1200),
		PaymentDate: "2026-08-20",
	}, &image)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.PaymentType != model.PaymentTypeCash {
		t.Errorf("default payment type = %q, want cash", payment.PaymentType)
	}
	if payment.ImagePath == nil || *payment.ImagePath != image {
		t.Errorf("image path not stored")
	}
	if payment.RecordedBy == nil {
		t.Errorf("recorded_by not set")
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, _, _, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	cases := []struct {
		name string
		req  CreatePaymentRequest
		want error
	}{
		{"zero amount", CreatePaymentRequest{SellerID: seller.ID.String(), Amount: decimal.Zero, PaymentDate: "2026-08-20"}, ErrValidation},
		{"negative amount", CreatePaymentRequest{SellerID: seller.ID.String(), Amount: decimal.NewFromInt(-5), PaymentDate: "2026-08-20"}, ErrValidation},
		{"bad type", CreatePaymentRequest{SellerID: seller.ID.String(), Amount: decimal.NewFromInt(5), PaymentDate: "2026-08-20", PaymentType: "crypto"}, ErrValidation},
		{"bad date", CreatePaymentRequest{SellerID: seller.ID.String(), Amount: decimal.NewFromInt(5), PaymentDate: "20-08-2026"}, ErrValidation},
		{"unknown seller", CreatePaymentRequest{SellerID: uuid.NewString(), Amount: decimal.NewFromInt(5), PaymentDate: "2026-08-20"}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.RecordPayment(context.Background(), "", tc.req, nil); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdatePaymentImageHandling(t *testing.T) {
	svc, paymentRepo, _, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	original := "/uploads/receipts/old.jpg"
	payment := &model.Payment{
		SellerID:    seller.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentType: model.PaymentTypeCash,
		ImagePath:   &original,
	}
	paymentRepo.Create(context.Background(), payment)

	// untouched when neither flag is set
	updated, err := svc.UpdatePayment(context.Background(), payment.ID.String(), UpdatePaymentRequest{}, nil, false)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if updated.ImagePath == nil || *updated.ImagePath != original {
		t.Errorf("image dropped without being asked")
	}

	// replaced when a new path arrives
	replacement := "/uploads/receipts/new.jpg"
	updated, err = svc.UpdatePayment(context.Background(), payment.ID.String(), UpdatePaymentRequest{}, &replacement, false)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if updated.ImagePath == nil || *updated.ImagePath != replacement {
		t.Errorf("image not replaced")
	}

	// cleared on request
	updated, err = svc.UpdatePayment(context.Background(), payment.ID.String(), UpdatePaymentRequest{}, nil, true)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if updated.ImagePath != nil {
		t.Errorf("image not cleared")
	}
}

func TestUpdatePaymentPatchSemantics(t *testing.T) {
	svc, paymentRepo, _, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	payment := &model.Payment{
		SellerID:    seller.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentType: model.PaymentTypeUPI,
		Notes:       "first installment",
	}
	paymentRepo.Create(context.Background(), payment)

	amount := decimal.NewFromInt(750)
	updated, err := svc.UpdatePayment(context.Background(), payment.ID.String(), UpdatePaymentRequest{Amount: &amount}, nil, false)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if !updated.Amount.Equal(amount) {
		t.Errorf("amount = %s, want %s", updated.Amount, amount)
	}
	if updated.PaymentType != model.PaymentTypeUPI || updated.Notes != "first installment" {
		t.Errorf("untouched fields changed")
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	if err := svc.DeletePayment(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordPendingDefaultsToPending(t *testing.T) {
	svc, _, _, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	pending, err := svc.RecordPending(context.Background(), CreatePendingRequest{
		SellerID: seller.ID.String(),
		Amount:   decimal.NewFromInt(300),
		DueDate:  "2026-09-15",
	})
	if err != nil {
		t.Fatalf("RecordPending: %v", err)
	}
	if pending.Status != model.PendingStatusPending {
		t.Errorf("status = %q, want pending", pending.Status)
	}
	if pending.DueDate == nil {
		t.Errorf("due date not stored")
	}
}

func TestUpdatePendingStatusTransitions(t *testing.T) {
	svc, _, pendingRepo, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	pending := &model.PendingAmount{
		SellerID: seller.ID,
		Amount:   decimal.NewFromInt(300),
		Status:   model.PendingStatusPending,
	}
	pendingRepo.Create(context.Background(), pending)

	for _, status := range []string{model.PendingStatusPartial, model.PendingStatusPaid} {
		updated, err := svc.UpdatePending(context.Background(), pending.ID.String(), UpdatePendingRequest{Status: &status})
		if err != nil {
			t.Fatalf("UpdatePending(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	bad := "overdue"
	if _, err := svc.UpdatePending(context.Background(), pending.ID.String(), UpdatePendingRequest{Status: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestListOpenPendingExcludesPaid(t *testing.T) {
	svc, _, pendingRepo, sellerRepo := newPaymentFixture()
	seller := seedSeller(t, sellerRepo)

	pendingRepo.Create(context.Background(), &model.PendingAmount{
		SellerID: seller.ID, Amount: decimal.NewFromInt(100), Status: model.PendingStatusPending,
	})
	pendingRepo.Create(context.Background(), &model.PendingAmount{
		SellerID: seller.ID, Amount: decimal.NewFromInt(200), Status: model.PendingStatusPaid,
	})

	open, err := svc.ListOpenPending(context.Background())
	if err != nil {
		t.Fatalf("ListOpenPending: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open pending = %d, want 1", len(open))
	}
	if open[0].Status == model.PendingStatusPaid {
		t.Errorf("paid entry leaked into open list")
	}
}
