package ingest

import (
	"strconv"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/currency"
)

// rawRecord matches one scraped product object. Scrapers disagree on key
// naming (price_offer vs offer_price) and on whether prices and ids are
// numbers or strings, so loose types are decoded here and nowhere else.
type rawRecord struct {
	ID          any `json:"id"`
	Name        any `json:"name"`
	URL         any `json:"url"`
	Image       any `json:"image"`
	Stock       any `json:"stock"`
	Discount    any `json:"discount"`
	OfferPrice  any `json:"offer_price"`
	PriceOffer  any `json:"price_offer"`
	NormalPrice any `json:"normal_price"`
	PriceNormal any `json:"price_normal"`
}

func (r *rawRecord) toEntry() model.ProductEntry {
	entry := model.ProductEntry{
		Name:        asString(r.Name),
		URL:         asString(r.URL),
		Image:       asString(r.Image),
		Stock:       asString(r.Stock),
		Discount:    int(asAmount(r.Discount)),
		OfferPrice:  asAmount(firstSet(r.OfferPrice, r.PriceOffer)),
		NormalPrice: asAmount(firstSet(r.NormalPrice, r.PriceNormal)),
	}
	if id := asString(r.ID); id != "" {
		entry.ID = &id
	}
	return entry
}

func firstSet(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		// Numeric ids come through json as float64.
		return strconv.FormatInt(int64(s), 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asAmount coerces a price or discount value to an integer. Strings go
// through the currency parser so "$1.990" and "1990" agree; anything
// unparseable is 0.
func asAmount(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(n)
	case string:
		return currency.Parse(n)
	default:
		return 0
	}
}
