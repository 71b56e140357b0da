package alert

import (
	"context"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

type Repository interface {
	Create(ctx context.Context, alert *model.Alert) error
	FindByID(ctx context.Context, id string) (*model.Alert, error)
	FindByEmail(ctx context.Context, email string) ([]model.Alert, error)
	FindAll(ctx context.Context) ([]model.Alert, error)
	UpdateLastKnownPrice(ctx context.Context, id string, price int64) error
	Delete(ctx context.Context, id string) error

	// TryCheckLock takes the service-wide advisory lock for the alert check
	// run. The returned release func must be called when ok is true.
	TryCheckLock(ctx context.Context) (release func(), ok bool, err error)
}
