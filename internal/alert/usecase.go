package alert

import (
	"context"
	"errors"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

var (
	ErrNotFound = errors.New("alert not found")
	// ErrCheckRunning means another alert check holds the run lock. Running
	// two checks concurrently could email the same drop twice.
	ErrCheckRunning = errors.New("alert check already running")
)

type UseCase interface {
	CreateAlert(ctx context.Context, input *dto.CreateAlertInput) (*model.Alert, error)
	ListAlerts(ctx context.Context, email string) ([]model.Alert, error)
	DeleteAlert(ctx context.Context, id string) error
	// CheckAll compares every alert against the current catalog and emails
	// users whose watched price dropped. Idempotent per alert.
	CheckAll(ctx context.Context) (*dto.CheckReport, error)
}
