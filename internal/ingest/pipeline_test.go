package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

type fakeStore struct {
	catalogs  map[string]*model.Catalog
	snapshots map[string]model.SnapshotMap
	failFor   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		catalogs:  make(map[string]*model.Catalog),
		snapshots: make(map[string]model.SnapshotMap),
	}
}

func (s *fakeStore) SavePharmacy(_ context.Context, catalog *model.Catalog, snaps model.SnapshotMap) error {
	if catalog.Pharmacy == s.failFor {
		return errors.New("boom")
	}
	s.catalogs[catalog.Pharmacy] = catalog
	merged := s.snapshots[catalog.Pharmacy]
	if merged == nil {
		merged = make(model.SnapshotMap)
	}
	for date, snap := range snaps {
		merged[date] = snap
	}
	s.snapshots[catalog.Pharmacy] = merged
	return nil
}

func TestPipelineCatalogFromLatestHistoryFromAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "digestion.json"),
		`[{"id": "a", "name": "Antiacido", "offer_price": 500, "normal_price": 800}]`)
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-02", "digestion.json"),
		`[{"id": "a", "name": "Antiacido", "offer_price": 450, "normal_price": 800}]`)

	store := newFakeStore()
	res, err := NewPipeline(store, logger.NewNop()).Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pharmacies != 1 || res.Files != 2 {
		t.Fatalf("result = %+v", res)
	}

	catalog := store.catalogs["Cruz Verde"]
	if catalog == nil {
		t.Fatal("catalog not saved")
	}
	entries := catalog.Categories["digestion"]
	if len(entries) != 1 || entries[0].OfferPrice != 450 {
		t.Errorf("catalog should hold only the 2024-05-02 run, got %+v", entries)
	}

	snaps := store.snapshots["Cruz Verde"]
	if len(snaps) != 2 {
		t.Fatalf("history dates = %d, want 2", len(snaps))
	}
	if snaps["2024-05-01"]["digestion"][0].OfferPrice != 500 {
		t.Errorf("2024-05-01 snapshot price = %d, want 500", snaps["2024-05-01"]["digestion"][0].OfferPrice)
	}
	if snaps["2024-05-02"]["digestion"][0].OfferPrice != 450 {
		t.Errorf("2024-05-02 snapshot price = %d, want 450", snaps["2024-05-02"]["digestion"][0].OfferPrice)
	}
}

func TestPipelineEmptyTreeAbortsWithoutWrites(t *testing.T) {
	root := t.TempDir()
	// Folders exist but hold nothing parseable.
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "notas.txt"), "not data")
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "roto.json"), "{{{{")

	store := newFakeStore()
	_, err := NewPipeline(store, logger.NewNop()).Run(context.Background(), root)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	if len(store.catalogs) != 0 || len(store.snapshots) != 0 {
		t.Error("store must not be touched when there is no data")
	}
}

func TestPipelineContinuesPastFailingPharmacy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "digestion.json"),
		`[{"name": "Antiacido", "offer_price": 500}]`)
	writeFile(t, filepath.Join(root, "salcobrand", "2024-05-01", "digestion.json"),
		`[{"name": "Antiacido", "offer_price": 600}]`)

	store := newFakeStore()
	store.failFor = "Cruz Verde"
	res, err := NewPipeline(store, logger.NewNop()).Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pharmacies != 1 {
		t.Errorf("pharmacies persisted = %d, want 1", res.Pharmacies)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "Cruz Verde" {
		t.Errorf("failed = %v, want [Cruz Verde]", res.Failed)
	}
	if store.catalogs["Salcobrand"] == nil {
		t.Error("salcobrand should still be persisted")
	}
}
