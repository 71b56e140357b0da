package ingest

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

// ErrNoData is returned when the source tree holds no parseable data file at
// all. The pipeline refuses to touch the database in that case so a failed
// scrape run cannot wipe a good catalog.
var ErrNoData = errors.New("no parseable product data found")

// Store persists one pharmacy's ingestion output. The catalog replace and the
// history merge must land atomically; the Postgres repository wraps them in
// one transaction.
type Store interface {
	SavePharmacy(ctx context.Context, catalog *model.Catalog, snapshots model.SnapshotMap) error
}

type Pipeline struct {
	reader *Reader
	store  Store
	logger logger.ZapLogger
}

func NewPipeline(store Store, log logger.ZapLogger) *Pipeline {
	return &Pipeline{
		reader: NewReader(log),
		store:  store,
		logger: log,
	}
}

type Result struct {
	Pharmacies int
	Files      int
	Failed     []string
}

// Run ingests the whole tree under root: per pharmacy, the most recent date
// rebuilds the catalog and every date lands in its history slot. Pharmacies
// are processed sequentially; one pharmacy failing to persist does not stop
// the others.
func (p *Pipeline) Run(ctx context.Context, root string) (*Result, error) {
	trees, files, err := p.reader.ReadTree(root)
	if err != nil {
		return nil, err
	}
	if files == 0 {
		return nil, ErrNoData
	}

	res := &Result{Files: files}
	for i := range trees {
		tree := &trees[i]
		latest := tree.Latest()

		catalog := &model.Catalog{
			Pharmacy:   tree.Pharmacy,
			Categories: tree.ByDate[latest],
			UpdatedAt:  time.Now(),
		}

		snapshots := make(model.SnapshotMap, len(tree.Dates))
		for date, categories := range tree.ByDate {
			snapshots[date] = toSnapshot(categories)
		}

		if err := p.store.SavePharmacy(ctx, catalog, snapshots); err != nil {
			p.logger.Error("failed to persist pharmacy",
				zap.String("pharmacy", tree.Pharmacy), zap.Error(err))
			res.Failed = append(res.Failed, tree.Pharmacy)
			continue
		}

		res.Pharmacies++
		p.logger.Info("pharmacy ingested",
			zap.String("pharmacy", tree.Pharmacy),
			zap.String("latest", latest),
			zap.Int("dates", len(tree.Dates)))
	}
	return res, nil
}

func toSnapshot(categories model.CategoryMap) model.Snapshot {
	snap := make(model.Snapshot, len(categories))
	for category, entries := range categories {
		points := make([]model.PricePoint, 0, len(entries))
		for _, e := range entries {
			points = append(points, model.PricePoint{
				ID:          e.ID,
				Name:        e.Name,
				OfferPrice:  e.OfferPrice,
				NormalPrice: e.NormalPrice,
				Discount:    e.Discount,
			})
		}
		snap[category] = points
	}
	return snap
}
