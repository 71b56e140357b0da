package dto

type CreateAlertInput struct {
	UserEmail      string `json:"email"`
	MedicineID     string `json:"medicineId"`
	MedicineName   string `json:"medicineName"`
	MedicineSlug   string `json:"medicineSlug"`
	MedicineURL    string `json:"medicineUrl"`
	Image          string `json:"image"`
	Pharmacy       string `json:"pharmacy"`
	Category       string `json:"category"`
	LastKnownPrice string `json:"lastKnownPrice"` // currency string or digits
}

// CheckReport summarizes one alert check run.
type CheckReport struct {
	Checked  int `json:"checked"`
	Skipped  int `json:"skipped"`
	Notified int `json:"notified"`
}
