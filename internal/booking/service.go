package booking

import (
	"context"
	"time"

	"hospital-management-server/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Doctors may only publish availability this many days ahead.
	slotWindowDays = 7
)

// TreatmentInput carries the doctor-supplied fields upserted onto a
// treatment record when an appointment is marked Completed.
type TreatmentInput struct {
	Diagnosis    string
	Prescription string
	Notes        string
}

// Service is the availability and booking engine. It computes open slots as
// the set difference between published availability and active
// appointments, and drives every appointment mutation. It depends only on
// the repository interfaces, never on a concrete store.
type Service struct {
	slots   SlotRepository
	appts   AppointmentRepository
	doctors DoctorRepository
	now     func() time.Time
}

// NewService creates a booking service over the given repositories.
func NewService(slots SlotRepository, appts AppointmentRepository, doctors DoctorRepository) *Service {
	return &Service{slots: slots, appts: appts, doctors: doctors, now: time.Now}
}

// ListAvailableSlots returns the ordered bookable (date, time) pairs for a
// doctor in the inclusive [from, to] range. The operation itself is
// range-agnostic; the patient-facing handler passes today through
// today+7 days.
func (s *Service) ListAvailableSlots(ctx context.Context, doctorID, from, to string) ([]OpenSlot, error) {
	if _, err := time.Parse(dateLayout, from); err != nil {
		return nil, ValidationError("invalid from date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		return nil, ValidationError("invalid to date, expected YYYY-MM-DD")
	}
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.slots.ListOpen(ctx, doctorID, from, to)
}

// AddSlot publishes a doctor's availability for one (date, time) tuple.
// The date must fall within [today, today+7 days]. Publishing a tuple that
// already exists returns ErrSlotExists, which callers report
// informationally. There is no revocation path for published slots.
func (s *Service) AddSlot(ctx context.Context, doctorID, date, timeOfDay string) (*models.AvailabilitySlot, error) {
	slotDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ValidationError("invalid date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return nil, ValidationError("invalid time, expected HH:MM")
	}

	today := s.today()
	if slotDate.Before(today) || slotDate.After(today.AddDate(0, 0, slotWindowDays)) {
		return nil, ValidationError("availability must be within the next 7 days")
	}

	slot := &models.AvailabilitySlot{
		DoctorID:    doctorID,
		Date:        date,
		Time:        timeOfDay,
		IsAvailable: true,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Book creates a Booked appointment for the patient on the doctor's slot.
// The slot must exist, be flagged available and carry no active booking.
// A pre-check failure or a constraint rejection from a racing booker both
// come back as a declined outcome (ErrSlotUnavailable / ErrSlotTaken); the
// caller should re-query availability.
func (s *Service) Book(ctx context.Context, patientID, doctorID, date, timeOfDay string) (*models.Appointment, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ValidationError("invalid date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return nil, ValidationError("invalid time, expected HH:MM")
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	open, err := s.slots.IsOpen(ctx, doctorID, date, timeOfDay, "")
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSlotUnavailable
	}

	appt := &models.Appointment{
		PatientID:    patientID,
		DoctorID:     doctorID,
		DepartmentID: doctor.DepartmentID,
		Date:         date,
		Time:         timeOfDay,
		Status:       models.StatusBooked,
	}
	// The pre-check above is not race-free; the store's uniqueness
	// constraint is authoritative and surfaces as ErrSlotTaken.
	if err := s.appts.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks the patient's own appointment Cancelled. Cancelling an
// already-cancelled appointment is a no-op reported via
// ErrAlreadyCancelled. Because availability is a set difference, the slot
// reappears in listings with no further write.
func (s *Service) Cancel(ctx context.Context, appointmentID, patientID string) error {
	appt, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return ErrNotOwner
	}
	if appt.Status == models.StatusCancelled {
		return ErrAlreadyCancelled
	}

	appt.Status = models.StatusCancelled
	return s.appts.Update(ctx, appt)
}

// Reschedule moves the patient's own appointment to a new (date, time).
// The new tuple must be an open slot, excluding the appointment itself from
// the conflict check. The status is forced back to Booked, so a cancelled
// appointment is revived by rescheduling it.
func (s *Service) Reschedule(ctx context.Context, appointmentID, patientID, newDate, newTime string) (*models.Appointment, error) {
	if _, err := time.Parse(dateLayout, newDate); err != nil {
		return nil, ValidationError("invalid date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, newTime); err != nil {
		return nil, ValidationError("invalid time, expected HH:MM")
	}

	appt, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, ErrNotOwner
	}

	open, err := s.slots.IsOpen(ctx, appt.DoctorID, newDate, newTime, appt.ID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSlotUnavailable
	}

	appt.Date = newDate
	appt.Time = newTime
	appt.Status = models.StatusBooked
	if err := s.appts.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// SetStatus lets the assigned doctor move their appointment to any status.
// The transition graph is deliberately unguarded; keeping it behind this
// single entry point means a guarded state machine can be introduced later
// without touching callers. Transitioning to Completed upserts the
// treatment record from the supplied fields; transitioning away from
// Completed leaves the treatment in place.
func (s *Service) SetStatus(ctx context.Context, appointmentID, doctorID string, status models.AppointmentStatus, treatment *TreatmentInput) (*models.Appointment, error) {
	switch status {
	case models.StatusBooked, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil, ValidationError("invalid appointment status")
	}

	appt, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotOwner
	}

	appt.Status = status
	if status == models.StatusCompleted {
		t := &models.Treatment{AppointmentID: appt.ID}
		if treatment != nil {
			t.Diagnosis = treatment.Diagnosis
			t.Prescription = treatment.Prescription
			t.Notes = treatment.Notes
		}
		if err := s.appts.UpdateWithTreatment(ctx, appt, t); err != nil {
			return nil, err
		}
		return appt, nil
	}

	if err := s.appts.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// MySlots returns everything the doctor published in [from, to], booked
// or not.
func (s *Service) MySlots(ctx context.Context, doctorID, from, to string) ([]models.AvailabilitySlot, error) {
	return s.slots.ListByDoctor(ctx, doctorID, from, to)
}

// PatientAppointments returns all of a patient's appointments, newest
// first.
func (s *Service) PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.appts.ListByPatient(ctx, patientID)
}

// DoctorAppointments returns the doctor's appointments in [from, to].
func (s *Service) DoctorAppointments(ctx context.Context, doctorID, from, to string) ([]models.Appointment, error) {
	return s.appts.ListByDoctor(ctx, doctorID, from, to)
}

// BookingWindow is the inclusive date range the patient-facing UI offers:
// today through today+7 days.
func (s *Service) BookingWindow() (from, to string) {
	today := s.today()
	return today.Format(dateLayout), today.AddDate(0, 0, slotWindowDays).Format(dateLayout)
}

func (s *Service) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}
