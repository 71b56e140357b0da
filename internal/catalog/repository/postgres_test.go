package repository

import (
	"testing"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
)

func snap(category string, price int64) model.Snapshot {
	return model.Snapshot{
		category: []model.PricePoint{{Name: "x", OfferPrice: price}},
	}
}

func TestMergeSnapshotsAddsNewDates(t *testing.T) {
	existing := model.SnapshotMap{"2024-05-01": snap("digestion", 500)}
	incoming := model.SnapshotMap{"2024-05-02": snap("digestion", 450)}

	merged := mergeSnapshots(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("dates = %d, want 2", len(merged))
	}
	if merged["2024-05-01"]["digestion"][0].OfferPrice != 500 {
		t.Error("existing date must be preserved")
	}
	if merged["2024-05-02"]["digestion"][0].OfferPrice != 450 {
		t.Error("new date must be added")
	}
}

func TestMergeSnapshotsOverwritesOverlappingDateWholesale(t *testing.T) {
	existing := model.SnapshotMap{
		"2024-05-01": model.Snapshot{
			"digestion":      []model.PricePoint{{Name: "a", OfferPrice: 500}},
			"dolor y fiebre": []model.PricePoint{{Name: "b", OfferPrice: 900}},
		},
	}
	incoming := model.SnapshotMap{"2024-05-01": snap("digestion", 450)}

	merged := mergeSnapshots(existing, incoming)
	day := merged["2024-05-01"]
	if len(day) != 1 {
		t.Fatalf("re-ingested date must be replaced wholesale, got %v", day)
	}
	if day["digestion"][0].OfferPrice != 450 {
		t.Errorf("price = %d, want 450", day["digestion"][0].OfferPrice)
	}
}

func TestMergeSnapshotsNilExisting(t *testing.T) {
	incoming := model.SnapshotMap{"2024-05-02": snap("digestion", 450)}
	merged := mergeSnapshots(nil, incoming)
	if len(merged) != 1 {
		t.Fatalf("dates = %d, want 1", len(merged))
	}
}
