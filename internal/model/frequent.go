package model

// FrequentMedicine is a user-saved product reference for quick re-access.
// Unlike an Alert it carries no price baseline and no job touches it.
type FrequentMedicine struct {
	BaseModel
	UserEmail    string  `db:"user_email" json:"user_email"`
	MedicineID   *string `db:"medicine_id" json:"medicine_id"` // Nullable
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	MedicineSlug *string `db:"medicine_slug" json:"medicine_slug"`
	MedicineURL  *string `db:"medicine_url" json:"medicine_url"`
	Image        *string `db:"image" json:"image"`
	Pharmacy     string  `db:"pharmacy" json:"pharmacy"`
	Category     string  `db:"category" json:"category"`
}
