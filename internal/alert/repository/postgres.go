package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

// checkLockKey identifies the alert-check advisory lock. Arbitrary but must
// not collide with other advisory locks on the same database.
const checkLockKey = 792134001

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `
        INSERT INTO alerts (id, user_email, medicine_id, medicine_name, medicine_slug,
            medicine_url, image, pharmacy, category, last_known_price, created_at, updated_at)
        VALUES (:id, :user_email, :medicine_id, :medicine_name, :medicine_slug,
            :medicine_url, :image, :pharmacy, :category, :last_known_price, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	err := r.DB.GetContext(ctx, &alert, `SELECT * FROM alerts WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.SelectContext(ctx, &alerts,
		`SELECT * FROM alerts WHERE user_email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.SelectContext(ctx, &alerts, `SELECT * FROM alerts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *PGRepository) UpdateLastKnownPrice(ctx context.Context, id string, price int64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE alerts SET last_known_price = $2, updated_at = now() WHERE id = $1`, id, price)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	return err
}

// TryCheckLock grabs the run-wide advisory lock. Advisory locks are
// session-scoped, so the lock pins one connection until released.
func (r *PGRepository) TryCheckLock(ctx context.Context) (func(), bool, error) {
	conn, err := r.DB.Connx(ctx)
	if err != nil {
		return nil, false, err
	}

	var acquired bool
	if err := conn.GetContext(ctx, &acquired, `SELECT pg_try_advisory_lock($1)`, checkLockKey); err != nil {
		conn.Close()
		return nil, false, err
	}
	if !acquired {
		conn.Close()
		return nil, false, nil
	}

	release := func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, checkLockKey)
		conn.Close()
	}
	return release, true, nil
}
