package service

import (
	"context"
	"errors"
	"testing"

	"sellersync/internal/model"

	"github.com/google/uuid"
)

func newExhibitionFixture() (ExhibitionService, *fakeExhibitionRepo, *fakeSaleRepo) {
	exhibitionRepo := newFakeExhibitionRepo()
	saleRepo := newFakeSaleRepo()
	svc := NewExhibitionService(exhibitionRepo, saleRepo, &fakeTxManager{})
	return svc, exhibitionRepo, saleRepo
}

func TestCreateExhibitionDefaultsToUpcoming(t *testing.T) {
	svc, _, _ := newExhibitionFixture()

	exhibition, err := svc.CreateExhibition(context.Background(), CreateExhibitionRequest{
		Name:      "Winter Craft Fair",
		StartDate: "2026-12-01",
		EndDate:   "2026-12-05",
	})
	if err != nil {
		t.Fatalf("CreateExhibition: %v", err)
	}
	if exhibition.Status != model.ExhibitionStatusUpcoming {
		t.Errorf("status = %q, want upcoming", exhibition.Status)
	}
	if exhibition.StartDate == nil || exhibition.EndDate == nil {
		t.Errorf("dates not stored")
	}
}

func TestCreateExhibitionRejectsBadStatus(t *testing.T) {
	svc, _, _ := newExhibitionFixture()

	_, err := svc.CreateExhibition(context.Background(), CreateExhibitionRequest{
		Name:   "Winter Craft Fair",
		Status: "cancelled",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeleteExhibitionDetachesSales(t *testing.T) {
	svc, exhibitionRepo, saleRepo := newExhibitionFixture()

	exhibition := &model.Exhibition{Name: "Winter Craft Fair", Status: model.ExhibitionStatusActive}
	exhibitionRepo.Create(context.Background(), exhibition)

	sale := &model.Sale{StockItemID: uuid.New(), ExhibitionID: &exhibition.ID}
	saleRepo.Create(context.Background(), sale)

	if err := svc.DeleteExhibition(context.Background(), exhibition.ID.String()); err != nil {
		t.Fatalf("DeleteExhibition: %v", err)
	}

	if _, ok := exhibitionRepo.exhibitions[exhibition.ID]; ok {
		t.Errorf("exhibition still present")
	}
	kept, err := saleRepo.FindByID(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("sale was deleted along with the exhibition")
	}
	if kept.ExhibitionID != nil {
		t.Errorf("sale still references the deleted exhibition")
	}
}

func TestDeleteExhibitionNotFound(t *testing.T) {
	svc, _, _ := newExhibitionFixture()

	if err := svc.DeleteExhibition(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetExhibitionDetailListsOwnSales(t *testing.T) {
	svc, exhibitionRepo, saleRepo := newExhibitionFixture()

	exhibition := &model.Exhibition{Name: "Winter Craft Fair", Status: model.ExhibitionStatusActive}
	exhibitionRepo.Create(context.Background(), exhibition)
	other := &model.Exhibition{Name: "Spring Bazaar", Status: model.ExhibitionStatusUpcoming}
	exhibitionRepo.Create(context.Background(), other)

	saleRepo.Create(context.Background(), &model.Sale{StockItemID: uuid.New(), ExhibitionID: &exhibition.ID})
	saleRepo.Create(context.Background(), &model.Sale{StockItemID: uuid.New(), ExhibitionID: &other.ID})
	saleRepo.Create(context.Background(), &model.Sale{StockItemID: uuid.New()})

	detail, err := svc.GetExhibitionDetail(context.Background(), exhibition.ID.String())
	if err != nil {
		t.Fatalf("GetExhibitionDetail: %v", err)
	}
	if len(detail.Sales) != 1 {
		t.Errorf("attached sales = %d, want 1", len(detail.Sales))
	}
}

func TestExhibitionSummaryCounts(t *testing.T) {
	svc, exhibitionRepo, _ := newExhibitionFixture()

	for _, status := range []string{
		model.ExhibitionStatusActive,
		model.ExhibitionStatusActive,
		model.ExhibitionStatusUpcoming,
		model.ExhibitionStatusCompleted,
	} {
		exhibitionRepo.Create(context.Background(), &model.Exhibition{Name: "E", Status: status})
	}

	summary, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalExhibitions != 4 {
		t.Errorf("total = %d, want 4", summary.TotalExhibitions)
	}
	if summary.ActiveExhibitions != 2 {
		t.Errorf("active = %d, want 2", summary.ActiveExhibitions)
	}
	if summary.UpcomingExhibitions != 1 {
		t.Errorf("upcoming = %d, want 1", summary.UpcomingExhibitions)
	}
}

func TestListExhibitionsRejectsBadStatus(t *testing.T) {
	svc, _, _ := newExhibitionFixture()

	if _, err := svc.ListExhibitions(context.Background(), "finished"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
