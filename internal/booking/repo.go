package booking

import (
	"context"

	"hospital-management-server/internal/models"
)

// OpenSlot is one bookable (date, time) pair for a doctor.
type OpenSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// SlotRepository persists published availability slots. Slots are never
// deleted; a booked slot simply stops showing up in ListOpen.
type SlotRepository interface {
	// Create stores a new slot. Returns ErrSlotExists when the
	// (doctor, date, time) tuple is already published.
	Create(ctx context.Context, slot *models.AvailabilitySlot) error

	// ListOpen returns the ordered (date, time) pairs in [from, to] that are
	// published, flagged available and not held by a Booked appointment.
	ListOpen(ctx context.Context, doctorID, from, to string) ([]OpenSlot, error)

	// IsOpen reports whether one exact tuple is currently bookable.
	// excludeAppointmentID, when non-empty, removes that appointment from
	// the conflict check (used by reschedule).
	IsOpen(ctx context.Context, doctorID, date, timeOfDay, excludeAppointmentID string) (bool, error)

	// ListByDoctor returns all slots a doctor has published in [from, to],
	// booked or not.
	ListByDoctor(ctx context.Context, doctorID, from, to string) ([]models.AvailabilitySlot, error)
}

// AppointmentRepository persists appointments. Rows are never deleted.
type AppointmentRepository interface {
	// Create inserts a new appointment. A uniqueness-constraint rejection
	// (a racing booker won the slot) is returned as ErrSlotTaken.
	Create(ctx context.Context, appt *models.Appointment) error

	// GetByID returns ErrNotFound when no such appointment exists.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// Update saves a mutated appointment. Returns ErrSlotTaken when the
	// change collides with the active-slot uniqueness constraint.
	Update(ctx context.Context, appt *models.Appointment) error

	// UpdateWithTreatment saves the appointment and upserts its treatment
	// record in one transaction.
	UpdateWithTreatment(ctx context.Context, appt *models.Appointment, treatment *models.Treatment) error

	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID, from, to string) ([]models.Appointment, error)
}

// DoctorRepository is the slice of doctor data booking needs: the profile
// whose department gets copied onto a new appointment.
type DoctorRepository interface {
	// GetByID returns ErrNotFound when no such doctor profile exists.
	GetByID(ctx context.Context, id string) (*models.DoctorProfile, error)
}
