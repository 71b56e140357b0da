package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type fakeRepo struct {
	histories map[string]*model.History
	catalogs  []model.Catalog
}

func (f *fakeRepo) SavePharmacy(context.Context, *model.Catalog, model.SnapshotMap) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) FindAllCatalogs(context.Context) ([]model.Catalog, error) {
	return f.catalogs, nil
}

func (f *fakeRepo) FindCatalog(context.Context, string) (*model.Catalog, error) {
	return nil, nil
}

func (f *fakeRepo) FindHistory(_ context.Context, pharmacy string) (*model.History, error) {
	return f.histories[pharmacy], nil
}

func (f *fakeRepo) ListCategories(context.Context) ([]string, error) {
	return nil, nil
}

func strptr(s string) *string { return &s }

func testHistory() *model.History {
	return &model.History{
		Pharmacy: "Cruz Verde",
		Snapshots: model.SnapshotMap{
			"2024-05-01": model.Snapshot{
				"dolor y fiebre": []model.PricePoint{
					{ID: strptr("sku-1"), Name: "Paracetamol 500mg", OfferPrice: 1990, NormalPrice: 2990},
					{ID: strptr("sku-2"), Name: "Ibuprofeno 400mg", OfferPrice: 2490, NormalPrice: 2490},
				},
			},
			"2024-05-02": model.Snapshot{
				"dolor y fiebre": []model.PricePoint{
					{ID: strptr("sku-1"), Name: "Paracetamol 500mg", OfferPrice: 1790, NormalPrice: 2990},
				},
			},
		},
	}
}

func newTestUC() catalog.UseCase {
	repo := &fakeRepo{histories: map[string]*model.History{"Cruz Verde": testHistory()}}
	return NewCatalogUseCase(repo, nil, logger.NewNop())
}

func TestMedicineHistoryMatchesByID(t *testing.T) {
	uc := newTestUC()
	got, err := uc.MedicineHistory(context.Background(), &dto.HistoryQuery{
		MedicineID: "sku-1",
		Pharmacy:   "Cruz Verde",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Series) != 2 {
		t.Fatalf("series length = %d, want 2", len(got.Series))
	}
	// Ascending by date.
	if got.Series[0].Date != "2024-05-01" || got.Series[1].Date != "2024-05-02" {
		t.Errorf("series order = %s, %s", got.Series[0].Date, got.Series[1].Date)
	}
	if got.Series[1].OfferPrice != "$1.790" || got.Series[1].OfferAmount != 1790 {
		t.Errorf("latest point = %s / %d", got.Series[1].OfferPrice, got.Series[1].OfferAmount)
	}
}

func TestMedicineHistoryFallsBackToNameMatch(t *testing.T) {
	uc := newTestUC()
	got, err := uc.MedicineHistory(context.Background(), &dto.HistoryQuery{
		MedicineID: "no-such-id",
		Name:       "IBUPROFENO 400MG",
		Pharmacy:   "Cruz Verde",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Series) != 1 {
		t.Fatalf("series length = %d, want 1", len(got.Series))
	}
	if got.Name != "Ibuprofeno 400mg" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestMedicineHistoryNotFound(t *testing.T) {
	uc := newTestUC()

	_, err := uc.MedicineHistory(context.Background(), &dto.HistoryQuery{
		MedicineID: "ghost",
		Name:       "ghost",
		Pharmacy:   "Cruz Verde",
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown medicine: err = %v, want ErrNotFound", err)
	}

	_, err = uc.MedicineHistory(context.Background(), &dto.HistoryQuery{
		MedicineID: "sku-1",
		Pharmacy:   "Farmacia Fantasma",
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown pharmacy: err = %v, want ErrNotFound", err)
	}
}
