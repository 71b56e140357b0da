package ingest

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Dermatologia", "dermatologia"},
		{"strips diacritics", "Inflamación", "inflamacion"},
		{"hyphens become spaces", "dolor-fiebre e inflamacion", "dolor fiebre e inflamacion"},
		{"collapses whitespace", "  gripe   y    resfrio ", "gripe y resfrio"},
		{"unmapped passes through", "salud sexual", "salud sexual"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.in); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategorySynonyms(t *testing.T) {
	inputs := []string{
		"antiinflamatorios",
		"Antiinflamatorios",
		"dolor fiebre e inflamacion",
		"Dolor, Fiebre e Inflamación",
		"dolor fiebre y antiflamatorios",
		"Dolor-Fiebre y Antiflamatorios",
		"analgesicos",
	}
	for _, in := range inputs {
		if got := NormalizeCategory(in); got != "dolor y fiebre" {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, "dolor y fiebre")
		}
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	inputs := []string{
		"dolor y fiebre",
		"gripe y resfrio",
		"vitaminas y suplementos",
		"Dolor, Fiebre e Inflamación",
		"salud sexual",
		"Dermocosmética",
	}
	for _, in := range inputs {
		once := NormalizeCategory(in)
		if twice := NormalizeCategory(once); twice != once {
			t.Errorf("NormalizeCategory not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
