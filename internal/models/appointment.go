package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a booking of a patient against a doctor's slot.
// Rows are never physically deleted; cancellation is a status change.
// A partial unique index on (doctor_id, date, time) for non-cancelled rows
// (created in InitDB) is the authoritative guard against double booking.
type Appointment struct {
	BaseModel
	PatientID    string            `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID     string            `gorm:"size:36;not null;index" json:"doctorId"`
	DepartmentID *string           `gorm:"size:36" json:"departmentId"` // copied from the doctor at booking time
	Date         string            `gorm:"size:10;not null" json:"date"`
	Time         string            `gorm:"size:5;not null" json:"time"`
	Status       AppointmentStatus `gorm:"size:20;default:'Booked'" json:"status"`

	// Relations
	Patient    PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
	Doctor     DoctorProfile  `gorm:"foreignKey:DoctorID" json:"-"`
	Department *Department    `gorm:"foreignKey:DepartmentID" json:"-"`
	Treatment  *Treatment     `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}
