package models

// AvailabilitySlot is a published (doctor, date, time) tuple. Booking does
// not flip IsAvailable: open slots are computed as the set difference
// between this table and active appointments, so cancelling a booking frees
// the slot with no extra write. Slots are never deleted.
type AvailabilitySlot struct {
	BaseModel
	DoctorID    string `gorm:"size:36;not null;index;uniqueIndex:idx_slot_tuple" json:"doctorId"`
	Date        string `gorm:"size:10;not null;uniqueIndex:idx_slot_tuple" json:"date"` // "2006-01-02"
	Time        string `gorm:"size:5;not null;uniqueIndex:idx_slot_tuple" json:"time"`  // "15:04"
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	// Relations
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"-"`
}
