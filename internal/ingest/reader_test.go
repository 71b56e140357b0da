package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadTreeJSONAndJSONLAgree(t *testing.T) {
	root := t.TempDir()
	record := `{"id": "sku-1", "name": "Paracetamol 500mg", "url": "https://x/p/1", "offer_price": "$1.990", "normal_price": 2990, "discount": 33, "stock": "disponible"}`
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "analgesicos.json"), "["+record+"]")
	writeFile(t, filepath.Join(root, "salcobrand", "2024-05-01", "analgesicos.jsonl"), record+"\n")

	trees, files, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	if files != 2 {
		t.Fatalf("files = %d, want 2", files)
	}
	if len(trees) != 2 {
		t.Fatalf("pharmacies = %d, want 2", len(trees))
	}

	var entries [][]any
	for _, tree := range trees {
		cats := tree.ByDate["2024-05-01"]
		got, ok := cats["dolor y fiebre"]
		if !ok {
			t.Fatalf("%s: category %q missing, have %v", tree.Pharmacy, "dolor y fiebre", cats)
		}
		if len(got) != 1 {
			t.Fatalf("%s: entries = %d, want 1", tree.Pharmacy, len(got))
		}
		e := got[0]
		if e.ID == nil || *e.ID != "sku-1" {
			t.Errorf("%s: id = %v", tree.Pharmacy, e.ID)
		}
		if e.OfferPrice != 1990 || e.NormalPrice != 2990 || e.Discount != 33 {
			t.Errorf("%s: prices = %d/%d/%d", tree.Pharmacy, e.OfferPrice, e.NormalPrice, e.Discount)
		}
		entries = append(entries, []any{*e.ID, e.Name, e.URL, e.OfferPrice, e.NormalPrice, e.Discount, e.Stock})
	}
	if !reflect.DeepEqual(entries[0], entries[1]) {
		t.Errorf("json and jsonl entries differ: %v vs %v", entries[0], entries[1])
	}
}

func TestReadTreeLegacyPriceKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ahumada", "2024-05-01", "vitaminas.json"),
		`{"name": "Vitamina C", "price_offer": 4990, "price_normal": "$5.990"}`)

	trees, _, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	entries := trees[0].ByDate["2024-05-01"]["vitaminas y suplementos"]
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].OfferPrice != 4990 || entries[0].NormalPrice != 5990 {
		t.Errorf("prices = %d/%d, want 4990/5990", entries[0].OfferPrice, entries[0].NormalPrice)
	}
	if entries[0].ID != nil {
		t.Errorf("id = %v, want nil", entries[0].ID)
	}
}

func TestReadTreeSkipsMalformedLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "dermatologia.jsonl"),
		"{\"name\": \"Crema A\", \"offer_price\": 1000}\nnot json at all\n\n{\"name\": \"Crema B\", \"offer_price\": 2000}\n")

	trees, files, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	if files != 1 {
		t.Fatalf("files = %d, want 1", files)
	}
	entries := trees[0].ByDate["2024-05-01"]["dermatologia"]
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (malformed line skipped)", len(entries))
	}
}

func TestReadTreeRejectsNonISODateFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-02", "digestion.json"),
		`[{"name": "Antiacido", "offer_price": 500}]`)
	writeFile(t, filepath.Join(root, "cruzverde", "latest", "digestion.json"),
		`[{"name": "Antiacido nuevo", "offer_price": 900}]`)
	writeFile(t, filepath.Join(root, "cruzverde", "05-03-2024", "digestion.json"),
		`[{"name": "Antiacido raro", "offer_price": 700}]`)

	trees, _, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	tree := trees[0]
	if len(tree.Dates) != 1 || tree.Latest() != "2024-05-02" {
		t.Errorf("dates = %v, want only 2024-05-02", tree.Dates)
	}
}

func TestReadTreeLatestIsLexicallyGreatest(t *testing.T) {
	root := t.TempDir()
	for _, date := range []string{"2024-04-30", "2024-05-02", "2024-05-01"} {
		writeFile(t, filepath.Join(root, "salcobrand", date, "gripe y resfrio.json"),
			`[{"name": "Jarabe", "offer_price": 3000}]`)
	}

	trees, _, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	tree := trees[0]
	if tree.Latest() != "2024-05-02" {
		t.Errorf("latest = %q, want 2024-05-02", tree.Latest())
	}
	want := []string{"2024-05-02", "2024-05-01", "2024-04-30"}
	if !reflect.DeepEqual(tree.Dates, want) {
		t.Errorf("dates = %v, want %v", tree.Dates, want)
	}
}

func TestReadTreeMergesRawSpellingsOfSameCategory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "antiinflamatorios.json"),
		`[{"name": "Ibuprofeno", "offer_price": 1500}]`)
	writeFile(t, filepath.Join(root, "cruzverde", "2024-05-01", "dolor-fiebre-e-inflamacion.json"),
		`[{"name": "Ketoprofeno", "offer_price": 2500}]`)

	trees, _, err := NewReader(logger.NewNop()).ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	cats := trees[0].ByDate["2024-05-01"]
	if len(cats) != 1 {
		t.Fatalf("categories = %v, want single merged category", cats)
	}
	if len(cats["dolor y fiebre"]) != 2 {
		t.Errorf("merged entries = %d, want 2", len(cats["dolor y fiebre"]))
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("cruzverde"); got != "Cruz Verde" {
		t.Errorf("displayName(cruzverde) = %q", got)
	}
	if got := displayName("farmaexpress"); got != "Farmaexpress" {
		t.Errorf("displayName(farmaexpress) = %q", got)
	}
}
