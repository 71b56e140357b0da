package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ProductEntry is one scraped product inside a catalog category. Prices are
// integer Chilean pesos; display strings are rendered at the HTTP boundary.
type ProductEntry struct {
	ID          *string `json:"id"` // Nullable, scrapers may omit it
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Image       string  `json:"image"`
	OfferPrice  int64   `json:"offer_price"`
	NormalPrice int64   `json:"normal_price"`
	Discount    int     `json:"discount"`
	Stock       string  `json:"stock"`
}

// CategoryMap maps a normalized category name to its products in scrape order.
type CategoryMap map[string][]ProductEntry

func (m CategoryMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *CategoryMap) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("scan CategoryMap: unexpected type %T", src)
	}
}

// Catalog is the current product listing of one pharmacy. It is fully
// replaced on every ingestion run.
type Catalog struct {
	Pharmacy   string      `db:"pharmacy" json:"pharmacy"`
	Categories CategoryMap `db:"categories" json:"categories"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}
