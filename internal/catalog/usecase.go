package catalog

import (
	"context"
	"errors"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/dto"
)

// ErrNotFound covers both an unknown pharmacy and a medicine with no history.
var ErrNotFound = errors.New("not found")

type UseCase interface {
	ListCatalogs(ctx context.Context) ([]dto.CatalogView, error)
	ListCategories(ctx context.Context) ([]string, error)
	MedicineHistory(ctx context.Context, query *dto.HistoryQuery) (*dto.MedicineHistory, error)
	// InvalidateCache drops cached query results after an ingestion run.
	InvalidateCache(ctx context.Context)
}
