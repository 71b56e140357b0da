package catalog

import (
	"context"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

type Repository interface {
	// SavePharmacy replaces the pharmacy's catalog and merges the given
	// snapshots into its history, atomically.
	SavePharmacy(ctx context.Context, catalog *model.Catalog, snapshots model.SnapshotMap) error
	FindAllCatalogs(ctx context.Context) ([]model.Catalog, error)
	FindCatalog(ctx context.Context, pharmacy string) (*model.Catalog, error)
	FindHistory(ctx context.Context, pharmacy string) (*model.History, error)
	ListCategories(ctx context.Context) ([]string, error)
}
