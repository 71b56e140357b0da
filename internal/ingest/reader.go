package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
)

// Date folders must carry an ISO date name. This is a contract with the
// scrapers: "most recent" is the lexically greatest conforming name, which is
// only correct for this format. Non-conforming folders are skipped loudly
// instead of being silently mis-ordered.
var dateFolderRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// pharmacyNames canonicalizes folder names to display names.
var pharmacyNames = map[string]string{
	"cruzverde":  "Cruz Verde",
	"salcobrand": "Salcobrand",
	"ahumada":    "Farmacias Ahumada",
}

// PharmacyTree is everything read for one pharmacy folder: per-date,
// per-category product entries, with dates sorted most recent first.
type PharmacyTree struct {
	Pharmacy string
	Dates    []string
	ByDate   map[string]model.CategoryMap
	Files    int
}

// Latest returns the most recent date folder name, or "" when no conforming
// date folder had data.
func (t *PharmacyTree) Latest() string {
	if len(t.Dates) == 0 {
		return ""
	}
	return t.Dates[0]
}

type Reader struct {
	logger logger.ZapLogger
}

func NewReader(log logger.ZapLogger) *Reader {
	return &Reader{logger: log}
}

// ReadTree walks <root>/<pharmacy>/<date>/<category>.(json|jsonl) and returns
// one PharmacyTree per pharmacy folder, plus the total count of data files
// that yielded at least one record. Unreadable or malformed input is skipped
// and logged, never fatal.
func (r *Reader) ReadTree(root string) ([]PharmacyTree, int, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, 0, fmt.Errorf("read data root %s: %w", root, err)
	}

	var trees []PharmacyTree
	totalFiles := 0
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		tree := r.readPharmacy(filepath.Join(root, d.Name()), d.Name())
		totalFiles += tree.Files
		if len(tree.Dates) > 0 {
			trees = append(trees, tree)
		}
	}
	return trees, totalFiles, nil
}

func (r *Reader) readPharmacy(dir, folder string) PharmacyTree {
	tree := PharmacyTree{
		Pharmacy: displayName(folder),
		ByDate:   make(map[string]model.CategoryMap),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Warn("cannot read pharmacy folder", zap.String("dir", dir), zap.Error(err))
		return tree
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		date := e.Name()
		if !dateFolderRe.MatchString(date) {
			r.logger.Warn("skipping non-ISO date folder",
				zap.String("pharmacy", folder), zap.String("folder", date))
			continue
		}
		categories, files := r.readDate(filepath.Join(dir, date))
		tree.Files += files
		if len(categories) > 0 {
			tree.ByDate[date] = categories
			tree.Dates = append(tree.Dates, date)
		}
	}

	// Lexical descending: with ISO names this is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(tree.Dates)))
	return tree
}

func (r *Reader) readDate(dir string) (model.CategoryMap, int) {
	categories := make(model.CategoryMap)
	files := 0

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Warn("cannot read date folder", zap.String("dir", dir), zap.Error(err))
		return categories, 0
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".json" && ext != ".jsonl" {
			continue
		}

		records := r.readFile(filepath.Join(dir, name), ext)
		if len(records) == 0 {
			continue
		}
		files++

		category := NormalizeCategory(strings.TrimSuffix(name, filepath.Ext(name)))
		for i := range records {
			categories[category] = append(categories[category], records[i].toEntry())
		}
	}
	return categories, files
}

func (r *Reader) readFile(path, ext string) []rawRecord {
	if ext == ".jsonl" {
		return r.readJSONL(path)
	}
	return r.readJSON(path)
}

// readJSON accepts either an array of objects or a single object.
func (r *Reader) readJSON(path string) []rawRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("cannot read data file", zap.String("file", path), zap.Error(err))
		return nil
	}

	var records []rawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records
	}

	var single rawRecord
	if err := json.Unmarshal(data, &single); err == nil {
		return []rawRecord{single}
	}

	r.logger.Warn("skipping malformed json file", zap.String("file", path))
	return nil
}

// readJSONL reads one object per non-empty line, skipping malformed lines.
func (r *Reader) readJSONL(path string) []rawRecord {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("cannot read data file", zap.String("file", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	var records []rawRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			r.logger.Warn("skipping malformed jsonl line",
				zap.String("file", path), zap.Int("line", line))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("error scanning jsonl file", zap.String("file", path), zap.Error(err))
	}
	return records
}

var titleCaser = cases.Title(language.LatinAmericanSpanish)

func displayName(folder string) string {
	if name, ok := pharmacyNames[strings.ToLower(folder)]; ok {
		return name
	}
	return titleCaser.String(strings.ToLower(folder))
}
