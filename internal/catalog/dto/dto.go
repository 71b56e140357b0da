package dto

import (
	"time"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/model"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/currency"
)

// ProductView is a catalog entry as the UI consumes it: prices both as
// display strings and as raw peso amounts.
type ProductView struct {
	ID           *string `json:"id"`
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	Image        string  `json:"image"`
	OfferPrice   string  `json:"offer_price"`
	NormalPrice  string  `json:"normal_price"`
	OfferAmount  int64   `json:"offer_amount"`
	NormalAmount int64   `json:"normal_amount"`
	Discount     int     `json:"discount"`
	Stock        string  `json:"stock"`
}

type CatalogView struct {
	Pharmacy   string                   `json:"pharmacy"`
	Categories map[string][]ProductView `json:"categories"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

func NewCatalogView(c *model.Catalog) CatalogView {
	view := CatalogView{
		Pharmacy:   c.Pharmacy,
		Categories: make(map[string][]ProductView, len(c.Categories)),
		UpdatedAt:  c.UpdatedAt,
	}
	for category, entries := range c.Categories {
		products := make([]ProductView, 0, len(entries))
		for _, e := range entries {
			products = append(products, ProductView{
				ID:           e.ID,
				Name:         e.Name,
				URL:          e.URL,
				Image:        e.Image,
				OfferPrice:   currency.Format(e.OfferPrice),
				NormalPrice:  currency.Format(e.NormalPrice),
				OfferAmount:  e.OfferPrice,
				NormalAmount: e.NormalPrice,
				Discount:     e.Discount,
				Stock:        e.Stock,
			})
		}
		view.Categories[category] = products
	}
	return view
}

type HistoryQuery struct {
	MedicineID string
	Name       string
	Pharmacy   string
}

type HistoryPoint struct {
	Date         string `json:"date"`
	OfferPrice   string `json:"offer_price"`
	NormalPrice  string `json:"normal_price"`
	OfferAmount  int64  `json:"offer_amount"`
	NormalAmount int64  `json:"normal_amount"`
	Discount     int    `json:"discount"`
}

type MedicineHistory struct {
	Pharmacy   string         `json:"pharmacy"`
	MedicineID string         `json:"medicine_id,omitempty"`
	Name       string         `json:"name"`
	Series     []HistoryPoint `json:"series"`
}
