package models

// Department is an independent reference entity. Doctors are optionally
// assigned to one; appointments carry a copy taken at booking time.
type Department struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}
