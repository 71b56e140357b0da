package frequent

import (
	"context"
	"errors"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

var ErrNotFound = errors.New("frequent medicine not found")

type UseCase interface {
	SaveFrequent(ctx context.Context, input *dto.CreateFrequentInput) (*model.FrequentMedicine, error)
	ListFrequents(ctx context.Context, email string) ([]model.FrequentMedicine, error)
	DeleteFrequent(ctx context.Context, id string) error
}
