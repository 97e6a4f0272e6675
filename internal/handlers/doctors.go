package handlers

import (
	"errors"

	"hospital-management-server/internal/booking"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DoctorHandler handles doctor-facing requests: availability publishing,
// the doctor's schedule, appointment status transitions, and patient
// treatment history.
type DoctorHandler struct {
	DB     *gorm.DB
	Svc    *booking.Service
	Logger *zap.Logger
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, svc *booking.Service, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{DB: db, Svc: svc, Logger: logger}
}

// GetMyProfile returns the authenticated doctor's profile.
func (h *DoctorHandler) GetMyProfile(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}
	if err := h.DB.Preload("Department").First(profile, "id = ?", profile.ID).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	utils.Success(c, "Profile fetched successfully", profile)
}

// UpdateDoctorProfileRequest represents the self-editable doctor profile
// fields. Department and name changes go through an admin.
type UpdateDoctorProfileRequest struct {
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
}

// UpdateMyProfile updates the authenticated doctor's profile.
func (h *DoctorHandler) UpdateMyProfile(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req UpdateDoctorProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := h.DB.Save(profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	utils.Success(c, "Profile updated successfully", profile)
}

// AddSlotRequest represents the request body for publishing an availability
// slot.
type AddSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// AddSlot publishes a new availability slot for the authenticated doctor.
// Publishing a slot that already exists is reported as an informational
// no-op, not an error.
func (h *DoctorHandler) AddSlot(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req AddSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	slot, err := h.Svc.AddSlot(c.Request.Context(), profile.ID, req.Date, req.Time)
	if errors.Is(err, booking.ErrSlotExists) {
		utils.Success(c, "Slot already exists for this date and time", nil)
		return
	}
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	h.Logger.Info("availability slot published",
		zap.String("doctorId", profile.ID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	utils.Created(c, "Slot added successfully", slot)
}

// MySlots lists the authenticated doctor's published slots inside the
// booking window.
func (h *DoctorHandler) MySlots(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	from, to := h.Svc.BookingWindow()
	if v := c.Query("from"); v != "" {
		from = v
	}
	if v := c.Query("to"); v != "" {
		to = v
	}

	slots, err := h.Svc.MySlots(c.Request.Context(), profile.ID, from, to)
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Slots fetched successfully", slots)
}

// DoctorAppointmentView is an appointment enriched with the patient's
// display fields for doctor-facing lists.
type DoctorAppointmentView struct {
	models.Appointment
	PatientName string `json:"patientName"`
}

// MyAppointments lists the authenticated doctor's appointments in a date
// range, defaulting to the booking window.
func (h *DoctorHandler) MyAppointments(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	from, to := h.Svc.BookingWindow()
	if v := c.Query("from"); v != "" {
		from = v
	}
	if v := c.Query("to"); v != "" {
		to = v
	}

	appts, err := h.Svc.DoctorAppointments(c.Request.Context(), profile.ID, from, to)
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	patients := h.patientNames(appts)
	views := make([]DoctorAppointmentView, 0, len(appts))
	for _, appt := range appts {
		view := DoctorAppointmentView{Appointment: appt}
		if p, found := patients[appt.PatientID]; found {
			view.PatientName = p.Name
		}
		views = append(views, view)
	}
	utils.Success(c, "Appointments fetched successfully", views)
}

func (h *DoctorHandler) patientNames(appts []models.Appointment) map[string]models.PatientProfile {
	ids := make([]string, 0, len(appts))
	seen := make(map[string]bool, len(appts))
	for _, appt := range appts {
		if !seen[appt.PatientID] {
			seen[appt.PatientID] = true
			ids = append(ids, appt.PatientID)
		}
	}
	result := make(map[string]models.PatientProfile, len(ids))
	if len(ids) == 0 {
		return result
	}
	var patients []models.PatientProfile
	if err := h.DB.Where("id IN ?", ids).Find(&patients).Error; err != nil {
		h.Logger.Warn("failed to load patient names for appointment list", zap.Error(err))
		return result
	}
	for _, p := range patients {
		result[p.ID] = p
	}
	return result
}

// UpdateStatusRequest represents the request body for an appointment status
// transition. Treatment details are required when marking Completed and
// ignored otherwise.
type UpdateStatusRequest struct {
	Status    models.AppointmentStatus `json:"status" binding:"required"`
	Treatment *TreatmentRequest        `json:"treatment"`
}

// TreatmentRequest holds the treatment fields recorded when an appointment
// is completed.
type TreatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// UpdateAppointmentStatus transitions one of the authenticated doctor's
// appointments to a new status, upserting the treatment record when the
// target status is Completed.
func (h *DoctorHandler) UpdateAppointmentStatus(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var treatment *booking.TreatmentInput
	if req.Status == models.StatusCompleted {
		if req.Treatment == nil {
			utils.BadRequest(c, "Treatment details are required when completing an appointment")
			return
		}
		treatment = &booking.TreatmentInput{
			Diagnosis:    req.Treatment.Diagnosis,
			Prescription: req.Treatment.Prescription,
			Notes:        req.Treatment.Notes,
		}
	}

	appointmentID := c.Param("id")
	appt, err := h.Svc.SetStatus(c.Request.Context(), appointmentID, profile.ID, req.Status, treatment)
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	h.Logger.Info("appointment status updated",
		zap.String("appointmentId", appointmentID),
		zap.String("doctorId", profile.ID),
		zap.String("status", string(req.Status)),
	)
	utils.Success(c, "Appointment status updated successfully", appt)
}

// PatientHistory lists a patient's completed appointments together with
// their treatments. Restricted to doctors that share at least one
// appointment with the patient.
func (h *DoctorHandler) PatientHistory(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	patientID := c.Param("id")

	var shared int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", profile.ID, patientID).
		Count(&shared).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if shared == 0 {
		utils.Forbidden(c, "You can only view the history of your own patients")
		return
	}

	var history []models.Appointment
	if err := h.DB.Preload("Treatment").
		Where("patient_id = ? AND status = ?", patientID, models.StatusCompleted).
		Order("date desc, time desc").
		Find(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patient history: "+err.Error())
		return
	}
	utils.Success(c, "Patient history fetched successfully", history)
}
