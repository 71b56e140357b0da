package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type frequentUseCase struct {
	repo   frequent.Repository
	logger logger.ZapLogger
}

func NewFrequentUseCase(repo frequent.Repository, log logger.ZapLogger) frequent.UseCase {
	return &frequentUseCase{repo: repo, logger: log}
}

func (uc *frequentUseCase) SaveFrequent(ctx context.Context, input *dto.CreateFrequentInput) (*model.FrequentMedicine, error) {
	now := time.Now()
	fm := &model.FrequentMedicine{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserEmail:    input.UserEmail,
		MedicineName: input.MedicineName,
		Pharmacy:     input.Pharmacy,
		Category:     input.Category,
		MedicineID:   optional(input.MedicineID),
		MedicineSlug: optional(input.MedicineSlug),
		MedicineURL:  optional(input.MedicineURL),
		Image:        optional(input.Image),
	}

	if err := uc.repo.Create(ctx, fm); err != nil {
		return nil, err
	}
	return fm, nil
}

func (uc *frequentUseCase) ListFrequents(ctx context.Context, email string) ([]model.FrequentMedicine, error) {
	return uc.repo.FindByEmail(ctx, email)
}

func (uc *frequentUseCase) DeleteFrequent(ctx context.Context, id string) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return frequent.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
