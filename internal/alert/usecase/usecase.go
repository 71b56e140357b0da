package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/currency"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/mailer"
)

type alertUseCase struct {
	repo     alert.Repository
	catalogs catalog.Repository
	mail     mailer.Sender
	logger   logger.ZapLogger
}

func NewAlertUseCase(repo alert.Repository, catalogs catalog.Repository, mail mailer.Sender, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		repo:     repo,
		catalogs: catalogs,
		mail:     mail,
		logger:   log,
	}
}

func (uc *alertUseCase) CreateAlert(ctx context.Context, input *dto.CreateAlertInput) (*model.Alert, error) {
	now := time.Now()
	a := &model.Alert{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserEmail:      input.UserEmail,
		MedicineName:   input.MedicineName,
		Pharmacy:       input.Pharmacy,
		Category:       input.Category,
		MedicineID:     optional(input.MedicineID),
		MedicineSlug:   optional(input.MedicineSlug),
		MedicineURL:    optional(input.MedicineURL),
		Image:          optional(input.Image),
		LastKnownPrice: currency.Parse(input.LastKnownPrice),
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *alertUseCase) ListAlerts(ctx context.Context, email string) ([]model.Alert, error) {
	return uc.repo.FindByEmail(ctx, email)
}

func (uc *alertUseCase) DeleteAlert(ctx context.Context, id string) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return alert.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// CheckAll walks every stored alert once. A drop is a strictly positive
// current offer price strictly below the stored baseline; everything else,
// including alerts whose medicine vanished from the catalog, is skipped
// silently. The baseline only moves down, and only after the notification
// went out, so a failed send is retried on the next run.
func (uc *alertUseCase) CheckAll(ctx context.Context) (*dto.CheckReport, error) {
	release, ok, err := uc.repo.TryCheckLock(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, alert.ErrCheckRunning
	}
	defer release()

	alerts, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.CheckReport{}
	catalogCache := make(map[string]*model.Catalog)

	for i := range alerts {
		a := &alerts[i]
		report.Checked++

		cat, cached := catalogCache[a.Pharmacy]
		if !cached {
			cat, err = uc.catalogs.FindCatalog(ctx, a.Pharmacy)
			if err != nil {
				uc.logger.Error("failed to load catalog for alert check",
					zap.String("pharmacy", a.Pharmacy), zap.Error(err))
				report.Skipped++
				continue
			}
			catalogCache[a.Pharmacy] = cat
		}
		if cat == nil {
			report.Skipped++
			continue
		}

		entry := findEntry(cat, a)
		if entry == nil {
			report.Skipped++
			continue
		}

		if entry.OfferPrice <= 0 || entry.OfferPrice >= a.LastKnownPrice {
			continue
		}

		if err := uc.notifyDrop(a, entry); err != nil {
			uc.logger.Warn("failed to send price-drop mail",
				zap.String("alert_id", a.ID), zap.String("email", a.UserEmail), zap.Error(err))
			report.Skipped++
			continue
		}
		if err := uc.repo.UpdateLastKnownPrice(ctx, a.ID, entry.OfferPrice); err != nil {
			uc.logger.Error("failed to persist new baseline price",
				zap.String("alert_id", a.ID), zap.Error(err))
			continue
		}
		report.Notified++

		uc.logger.Info("price drop notified",
			zap.String("medicine", a.MedicineName),
			zap.String("pharmacy", a.Pharmacy),
			zap.Int64("old_price", a.LastKnownPrice),
			zap.Int64("new_price", entry.OfferPrice))
	}

	return report, nil
}

// findEntry locates the alert's medicine in the current catalog: by id inside
// the alert's own category first, then by id anywhere, then by
// case-insensitive name.
func findEntry(cat *model.Catalog, a *model.Alert) *model.ProductEntry {
	byID := func(e *model.ProductEntry) bool {
		return a.MedicineID != nil && e.ID != nil && *e.ID == *a.MedicineID
	}
	byName := func(e *model.ProductEntry) bool {
		return strings.EqualFold(e.Name, a.MedicineName)
	}

	if entries, ok := cat.Categories[a.Category]; ok {
		if e := scan(entries, byID); e != nil {
			return e
		}
	}
	for _, entries := range cat.Categories {
		if e := scan(entries, byID); e != nil {
			return e
		}
	}
	for _, entries := range cat.Categories {
		if e := scan(entries, byName); e != nil {
			return e
		}
	}
	return nil
}

func scan(entries []model.ProductEntry, match func(*model.ProductEntry) bool) *model.ProductEntry {
	for i := range entries {
		if match(&entries[i]) {
			return &entries[i]
		}
	}
	return nil
}

func (uc *alertUseCase) notifyDrop(a *model.Alert, entry *model.ProductEntry) error {
	url := entry.URL
	if url == "" && a.MedicineURL != nil {
		url = *a.MedicineURL
	}
	body, err := mailer.RenderPriceDrop(mailer.PriceDropData{
		MedicineName: a.MedicineName,
		Pharmacy:     a.Pharmacy,
		NewPrice:     currency.Format(entry.OfferPrice),
		OldPrice:     currency.Format(a.LastKnownPrice),
		MedicineURL:  url,
	})
	if err != nil {
		return err
	}
	subject := "Bajó de precio: " + a.MedicineName
	return uc.mail.Send([]string{a.UserEmail}, subject, body)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
