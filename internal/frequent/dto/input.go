package dto

type CreateFrequentInput struct {
	UserEmail    string `json:"email"`
	MedicineID   string `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	MedicineSlug string `json:"medicineSlug"`
	MedicineURL  string `json:"medicineUrl"`
	Image        string `json:"image"`
	Pharmacy     string `json:"pharmacy"`
	Category     string `json:"category"`
}
