package models

// Treatment belongs to exactly one appointment. It is created the first
// time the appointment is marked Completed and overwritten on later
// completions; moving the appointment away from Completed leaves it in
// place, so history is retained.
type Treatment struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	Diagnosis     string `gorm:"type:text" json:"diagnosis"`
	Prescription  string `gorm:"type:text" json:"prescription"`
	Notes         string `gorm:"type:text" json:"notes"`
}
