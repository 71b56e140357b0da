package model

// Alert is a user-registered price watch on one medicine in one pharmacy.
// LastKnownPrice is the drop-detection baseline in pesos; the checker only
// lowers it.
type Alert struct {
	BaseModel
	UserEmail      string  `db:"user_email" json:"user_email"`
	MedicineID     *string `db:"medicine_id" json:"medicine_id"` // Nullable
	MedicineName   string  `db:"medicine_name" json:"medicine_name"`
	MedicineSlug   *string `db:"medicine_slug" json:"medicine_slug"`
	MedicineURL    *string `db:"medicine_url" json:"medicine_url"`
	Image          *string `db:"image" json:"image"`
	Pharmacy       string  `db:"pharmacy" json:"pharmacy"`
	Category       string  `db:"category" json:"category"`
	LastKnownPrice int64   `db:"last_known_price" json:"last_known_price"`
}
