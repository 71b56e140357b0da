package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, fm *model.FrequentMedicine) error {
	query := `
        INSERT INTO frequent_medicines (id, user_email, medicine_id, medicine_name,
            medicine_slug, medicine_url, image, pharmacy, category, created_at, updated_at)
        VALUES (:id, :user_email, :medicine_id, :medicine_name,
            :medicine_slug, :medicine_url, :image, :pharmacy, :category, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, fm)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.FrequentMedicine, error) {
	var fm model.FrequentMedicine
	err := r.DB.GetContext(ctx, &fm, `SELECT * FROM frequent_medicines WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &fm, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) ([]model.FrequentMedicine, error) {
	var fms []model.FrequentMedicine
	err := r.DB.SelectContext(ctx, &fms,
		`SELECT * FROM frequent_medicines WHERE user_email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	return fms, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM frequent_medicines WHERE id = $1`, id)
	return err
}
