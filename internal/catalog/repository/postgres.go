package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// SavePharmacy rebuilds the pharmacy's catalog row and merges the run's
// snapshots into its history row in a single transaction, so a crash can
// never leave a wiped catalog next to a stale history.
func (r *PGRepository) SavePharmacy(ctx context.Context, catalog *model.Catalog, snapshots model.SnapshotMap) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Destructive replace of the catalog document.
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalogs WHERE pharmacy = $1`, catalog.Pharmacy); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO catalogs (pharmacy, categories, updated_at) VALUES ($1, $2, $3)`,
		catalog.Pharmacy, catalog.Categories, catalog.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}

	// History: load any pre-existing snapshots and union them with the new
	// run. New dates are additive; a re-ingested date replaces that date only.
	var existing model.History
	err = tx.GetContext(ctx, &existing,
		`SELECT pharmacy, snapshots FROM price_history WHERE pharmacy = $1 FOR UPDATE`,
		catalog.Pharmacy)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("load history: %w", err)
	}

	merged := mergeSnapshots(existing.Snapshots, snapshots)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO price_history (pharmacy, snapshots) VALUES ($1, $2)
		ON CONFLICT (pharmacy) DO UPDATE SET snapshots = EXCLUDED.snapshots`,
		catalog.Pharmacy, merged)
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}

	return tx.Commit()
}

// mergeSnapshots unions incoming dates over existing ones. Overlapping dates
// are overwritten wholesale, not merged at category granularity.
func mergeSnapshots(existing, incoming model.SnapshotMap) model.SnapshotMap {
	merged := make(model.SnapshotMap, len(existing)+len(incoming))
	for date, snap := range existing {
		merged[date] = snap
	}
	for date, snap := range incoming {
		merged[date] = snap
	}
	return merged
}

func (r *PGRepository) FindAllCatalogs(ctx context.Context) ([]model.Catalog, error) {
	var catalogs []model.Catalog
	err := r.DB.SelectContext(ctx, &catalogs,
		`SELECT pharmacy, categories, updated_at FROM catalogs ORDER BY pharmacy ASC`)
	if err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *PGRepository) FindCatalog(ctx context.Context, pharmacy string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.DB.GetContext(ctx, &catalog,
		`SELECT pharmacy, categories, updated_at FROM catalogs WHERE lower(pharmacy) = lower($1) LIMIT 1`,
		pharmacy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &catalog, nil
}

func (r *PGRepository) FindHistory(ctx context.Context, pharmacy string) (*model.History, error) {
	var history model.History
	err := r.DB.GetContext(ctx, &history,
		`SELECT pharmacy, snapshots FROM price_history WHERE lower(pharmacy) = lower($1) LIMIT 1`,
		pharmacy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *PGRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.DB.SelectContext(ctx, &categories,
		`SELECT DISTINCT jsonb_object_keys(categories) AS category FROM catalogs ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
