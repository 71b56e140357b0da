package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PricePoint is the lightweight per-product record kept in the history, one
// per product per snapshot date.
type PricePoint struct {
	ID          *string `json:"id"`
	Name        string  `json:"name"`
	OfferPrice  int64   `json:"offer_price"`
	NormalPrice int64   `json:"normal_price"`
	Discount    int     `json:"discount"`
}

// Snapshot holds everything captured for one pharmacy on one date, grouped by
// normalized category.
type Snapshot map[string][]PricePoint

// SnapshotMap maps a date folder name (YYYY-MM-DD) to its snapshot.
type SnapshotMap map[string]Snapshot

func (m SnapshotMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *SnapshotMap) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("scan SnapshotMap: unexpected type %T", src)
	}
}

// History is the cumulative per-pharmacy price record. Snapshots grow by
// date key and are never dropped by ingestion; re-ingesting an existing date
// overwrites that date only.
type History struct {
	Pharmacy  string      `db:"pharmacy" json:"pharmacy"`
	Snapshots SnapshotMap `db:"snapshots" json:"snapshots"`
}
