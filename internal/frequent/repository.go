package frequent

import (
	"context"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

type Repository interface {
	Create(ctx context.Context, fm *model.FrequentMedicine) error
	FindByID(ctx context.Context, id string) (*model.FrequentMedicine, error)
	FindByEmail(ctx context.Context, email string) ([]model.FrequentMedicine, error)
	Delete(ctx context.Context, id string) error
}
