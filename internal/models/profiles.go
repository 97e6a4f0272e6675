package models

// DoctorProfile carries the doctor-facing metadata for a user with the
// doctor role.
type DoctorProfile struct {
	BaseModel
	UserID         string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DepartmentID   *string `gorm:"size:36;index" json:"departmentId"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Specialization string  `gorm:"size:100" json:"specialization"`
	Phone          string  `gorm:"size:30" json:"phone"`
	Bio            string  `gorm:"type:text" json:"bio"`

	// Relations
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// PatientProfile carries the patient-facing metadata for a user with the
// patient role.
type PatientProfile struct {
	BaseModel
	UserID           string `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Name             string `gorm:"size:100;not null" json:"name"`
	Age              *int   `json:"age,omitempty"`
	Gender           string `gorm:"size:20" json:"gender"`
	Phone            string `gorm:"size:30" json:"phone"`
	Address          string `gorm:"size:255" json:"address"`
	EmergencyContact string `gorm:"size:100" json:"emergencyContact"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
