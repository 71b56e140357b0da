package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pharmacies spell the same category a dozen ways ("Dolor-Fiebre",
// "antiinflamatorios", "Dolor, Fiebre e Inflamación"). Scraped labels are
// collapsed to one canonical name so catalogs can be compared across chains.

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// synonymGroups maps a canonical category to the normalized spellings that
// collapse into it. Aliases must already be in normalized form (lowercase, no
// diacritics, single spaces).
var synonymGroups = map[string][]string{
	"dolor y fiebre": {
		"antiinflamatorios",
		"dolor fiebre e inflamacion",
		"dolor fiebre y antiflamatorios",
		"analgesicos",
		"dolor y fiebre e inflamacion",
	},
	"gripe y resfrio": {
		"antigripales",
		"resfrio y gripe",
		"gripe resfrio y alergias",
	},
	"vitaminas y suplementos": {
		"vitaminas",
		"suplementos y vitaminas",
		"vitaminas minerales y suplementos",
	},
	"dermatologia": {
		"cuidado de la piel",
		"dermocosmetica",
	},
	"digestion": {
		"salud digestiva",
		"digestivos y antiacidos",
	},
}

var synonyms = func() map[string]string {
	table := make(map[string]string)
	for canonical, aliases := range synonymGroups {
		for _, alias := range aliases {
			table[alias] = canonical
		}
	}
	return table
}()

// NormalizeCategory returns the canonical form of a raw category label:
// lowercase, diacritics stripped, punctuation and whitespace runs collapsed to
// single spaces, known synonyms mapped to their canonical name. It is
// idempotent, so already-normalized labels pass through unchanged.
func NormalizeCategory(raw string) string {
	s, _, err := transform.String(stripDiacritics, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToLower(s)
	// Hyphens, commas and friends all separate words in scraped labels.
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	if canonical, ok := synonyms[s]; ok {
		return canonical
	}
	return s
}
