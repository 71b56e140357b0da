package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/dto"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/cache"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/currency"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

const (
	cacheKeyCatalogs   = "catalogs:all"
	cacheKeyCategories = "catalogs:categories"
	cacheTTL           = 5 * time.Minute
)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewCatalogUseCase builds the query-side usecase. cache may be nil; piping
// every read through Postgres is slower but correct.
func NewCatalogUseCase(repo catalog.Repository, c *cache.RedisClient, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  c,
		logger: log,
	}
}

func (uc *catalogUseCase) ListCatalogs(ctx context.Context) ([]dto.CatalogView, error) {
	var views []dto.CatalogView
	if uc.cacheGet(ctx, cacheKeyCatalogs, &views) {
		return views, nil
	}

	catalogs, err := uc.repo.FindAllCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	views = make([]dto.CatalogView, 0, len(catalogs))
	for i := range catalogs {
		views = append(views, dto.NewCatalogView(&catalogs[i]))
	}

	uc.cacheSet(ctx, cacheKeyCatalogs, views)
	return views, nil
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if uc.cacheGet(ctx, cacheKeyCategories, &categories) {
		return categories, nil
	}

	categories, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// MedicineHistory extracts the price series of one medicine from a pharmacy's
// snapshots. Points are matched by product id first; when the id matches
// nothing the name is compared case-insensitively.
func (uc *catalogUseCase) MedicineHistory(ctx context.Context, query *dto.HistoryQuery) (*dto.MedicineHistory, error) {
	history, err := uc.repo.FindHistory(ctx, query.Pharmacy)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, catalog.ErrNotFound
	}

	series, name := collectSeries(history, query.MedicineID, query.Name)
	if len(series) == 0 {
		return nil, catalog.ErrNotFound
	}

	return &dto.MedicineHistory{
		Pharmacy:   history.Pharmacy,
		MedicineID: query.MedicineID,
		Name:       name,
		Series:     series,
	}, nil
}

func collectSeries(history *model.History, medicineID, name string) ([]dto.HistoryPoint, string) {
	points := pointsMatching(history, func(p *model.PricePoint) bool {
		return medicineID != "" && p.ID != nil && *p.ID == medicineID
	})
	if len(points) == 0 && name != "" {
		points = pointsMatching(history, func(p *model.PricePoint) bool {
			return strings.EqualFold(p.Name, name)
		})
	}

	series := make([]dto.HistoryPoint, 0, len(points))
	matchedName := ""
	dates := make([]string, 0, len(points))
	for date := range points {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		p := points[date]
		matchedName = p.Name
		series = append(series, dto.HistoryPoint{
			Date:         date,
			OfferPrice:   currency.Format(p.OfferPrice),
			NormalPrice:  currency.Format(p.NormalPrice),
			OfferAmount:  p.OfferPrice,
			NormalAmount: p.NormalPrice,
			Discount:     p.Discount,
		})
	}
	return series, matchedName
}

// pointsMatching returns at most one price point per date.
func pointsMatching(history *model.History, match func(*model.PricePoint) bool) map[string]model.PricePoint {
	points := make(map[string]model.PricePoint)
	for date, snap := range history.Snapshots {
		for _, pts := range snap {
			for i := range pts {
				if match(&pts[i]) {
					points[date] = pts[i]
					break
				}
			}
			if _, ok := points[date]; ok {
				break
			}
		}
	}
	return points
}

func (uc *catalogUseCase) InvalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, cacheKeyCatalogs, cacheKeyCategories).Err(); err != nil {
		uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

func (uc *catalogUseCase) cacheGet(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}
	val, err := uc.cache.Client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

func (uc *catalogUseCase) cacheSet(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.cache.Client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		uc.logger.Warn("failed to cache catalog query", zap.String("key", key), zap.Error(err))
	}
}
