package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// Gorm-backed repositories. Each call acquires the connection, runs one
// short-lived statement or transaction and releases it; no state is
// retained across operations. The connection must be opened with
// TranslateError so constraint violations surface as gorm.ErrDuplicatedKey.

const openSlotJoin = `LEFT JOIN appointments a
	ON a.doctor_id = availability_slots.doctor_id
	AND a.date = availability_slots.date
	AND a.time = availability_slots.time
	AND a.status = ?`

const openSlotJoinExcluding = openSlotJoin + ` AND a.id <> ?`

// SlotRepoGorm implements SlotRepository.
type SlotRepoGorm struct {
	db *gorm.DB
}

func NewSlotRepoGorm(db *gorm.DB) *SlotRepoGorm {
	return &SlotRepoGorm{db: db}
}

func (r *SlotRepoGorm) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotExists
	}
	return err
}

func (r *SlotRepoGorm) ListOpen(ctx context.Context, doctorID, from, to string) ([]OpenSlot, error) {
	var open []OpenSlot
	err := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Select("availability_slots.date, availability_slots.time").
		Joins(openSlotJoin, models.StatusBooked).
		Where("availability_slots.doctor_id = ?", doctorID).
		Where("availability_slots.is_available = ?", true).
		Where("availability_slots.date >= ? AND availability_slots.date <= ?", from, to).
		Where("a.id IS NULL").
		Order("availability_slots.date, availability_slots.time").
		Scan(&open).Error
	return open, err
}

func (r *SlotRepoGorm) IsOpen(ctx context.Context, doctorID, date, timeOfDay, excludeAppointmentID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.AvailabilitySlot{})
	if excludeAppointmentID != "" {
		q = q.Joins(openSlotJoinExcluding, models.StatusBooked, excludeAppointmentID)
	} else {
		q = q.Joins(openSlotJoin, models.StatusBooked)
	}

	var count int64
	err := q.
		Where("availability_slots.doctor_id = ?", doctorID).
		Where("availability_slots.date = ? AND availability_slots.time = ?", date, timeOfDay).
		Where("availability_slots.is_available = ?", true).
		Where("a.id IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *SlotRepoGorm) ListByDoctor(ctx context.Context, doctorID, from, to string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to).
		Order("date, time").
		Find(&slots).Error
	return slots, err
}

// AppointmentRepoGorm implements AppointmentRepository.
type AppointmentRepoGorm struct {
	db *gorm.DB
}

func NewAppointmentRepoGorm(db *gorm.DB) *AppointmentRepoGorm {
	return &AppointmentRepoGorm{db: db}
}

func (r *AppointmentRepoGorm) Create(ctx context.Context, appt *models.Appointment) error {
	err := r.db.WithContext(ctx).Create(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent booker won the slot between pre-check and insert.
		return ErrSlotTaken
	}
	return err
}

func (r *AppointmentRepoGorm) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepoGorm) Update(ctx context.Context, appt *models.Appointment) error {
	err := r.db.WithContext(ctx).Save(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

func (r *AppointmentRepoGorm) UpdateWithTreatment(ctx context.Context, appt *models.Appointment, treatment *models.Treatment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(appt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}

		var existing models.Treatment
		err := tx.Where("appointment_id = ?", appt.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Diagnosis = treatment.Diagnosis
			existing.Prescription = treatment.Prescription
			existing.Notes = treatment.Notes
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(treatment).Error
		default:
			return err
		}
	})
}

func (r *AppointmentRepoGorm) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Treatment").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepoGorm) ListByDoctor(ctx context.Context, doctorID, from, to string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Treatment").
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to).
		Order("date, time").
		Find(&appts).Error
	return appts, err
}

// DoctorRepoGorm implements DoctorRepository.
type DoctorRepoGorm struct {
	db *gorm.DB
}

func NewDoctorRepoGorm(db *gorm.DB) *DoctorRepoGorm {
	return &DoctorRepoGorm{db: db}
}

func (r *DoctorRepoGorm) GetByID(ctx context.Context, id string) (*models.DoctorProfile, error) {
	var doctor models.DoctorProfile
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

var (
	_ SlotRepository        = (*SlotRepoGorm)(nil)
	_ AppointmentRepository = (*AppointmentRepoGorm)(nil)
	_ DoctorRepository      = (*DoctorRepoGorm)(nil)
)
