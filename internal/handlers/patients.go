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

// PatientHandler handles patient-facing requests: profile upkeep, doctor
// discovery, and the patient side of the booking workflow.
type PatientHandler struct {
	DB     *gorm.DB
	Svc    *booking.Service
	Logger *zap.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, svc *booking.Service, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{DB: db, Svc: svc, Logger: logger}
}

// GetMyProfile returns the authenticated patient's profile.
func (h *PatientHandler) GetMyProfile(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}
	utils.Success(c, "Profile fetched successfully", profile)
}

// UpdatePatientProfileRequest represents the editable patient profile fields.
// Pointer fields distinguish "not sent" from "set to empty".
type UpdatePatientProfileRequest struct {
	Name             *string `json:"name"`
	Age              *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender           *string `json:"gender"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
}

// UpdateMyProfile updates the authenticated patient's profile.
func (h *PatientHandler) UpdateMyProfile(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req UpdatePatientProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			utils.BadRequest(c, "Name cannot be empty")
			return
		}
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = *req.EmergencyContact
	}

	if err := h.DB.Save(profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	utils.Success(c, "Profile updated successfully", profile)
}

// ListDoctors lists doctors, optionally filtered by free-text search over
// name and specialization, or by department.
func (h *PatientHandler) ListDoctors(c *gin.Context) {
	query := h.DB.Model(&models.DoctorProfile{}).Preload("Department")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR specialization ILIKE ?", like, like)
	}
	if departmentID := c.Query("departmentId"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var doctors []models.DoctorProfile
	if err := query.Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorAvailability lists a doctor's open slots inside the booking
// window. Optional from/to query parameters narrow the range; they default
// to the full window.
func (h *PatientHandler) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("id")

	from, to := h.Svc.BookingWindow()
	if v := c.Query("from"); v != "" {
		from = v
	}
	if v := c.Query("to"); v != "" {
		to = v
	}

	slots, err := h.Svc.ListAvailableSlots(c.Request.Context(), doctorID, from, to)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		respondBookingError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Available slots fetched successfully", gin.H{
		"doctorId": doctorID,
		"from":     from,
		"to":       to,
		"slots":    slots,
	})
}

// BookAppointmentRequest represents the request body for booking a slot.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// BookAppointment books an open slot for the authenticated patient.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Svc.Book(c.Request.Context(), profile.ID, req.DoctorID, req.Date, req.Time)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		respondBookingError(c, h.Logger, err)
		return
	}

	h.Logger.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("patientId", profile.ID),
		zap.String("doctorId", req.DoctorID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	utils.Created(c, "Appointment booked successfully", appt)
}

// PatientAppointmentView is an appointment enriched with the doctor's
// display fields for patient-facing lists.
type PatientAppointmentView struct {
	models.Appointment
	DoctorName           string `json:"doctorName"`
	DoctorSpecialization string `json:"doctorSpecialization,omitempty"`
}

// MyAppointments lists the authenticated patient's appointments, newest
// first, with treatment details where present.
func (h *PatientHandler) MyAppointments(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	appts, err := h.Svc.PatientAppointments(c.Request.Context(), profile.ID)
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	views := make([]PatientAppointmentView, 0, len(appts))
	doctors := h.doctorNames(appts)
	for _, appt := range appts {
		view := PatientAppointmentView{Appointment: appt}
		if d, found := doctors[appt.DoctorID]; found {
			view.DoctorName = d.Name
			view.DoctorSpecialization = d.Specialization
		}
		views = append(views, view)
	}
	utils.Success(c, "Appointments fetched successfully", views)
}

// doctorNames batch-loads the doctor profiles referenced by a set of
// appointments.
func (h *PatientHandler) doctorNames(appts []models.Appointment) map[string]models.DoctorProfile {
	ids := make([]string, 0, len(appts))
	seen := make(map[string]bool, len(appts))
	for _, appt := range appts {
		if !seen[appt.DoctorID] {
			seen[appt.DoctorID] = true
			ids = append(ids, appt.DoctorID)
		}
	}
	result := make(map[string]models.DoctorProfile, len(ids))
	if len(ids) == 0 {
		return result
	}
	var doctors []models.DoctorProfile
	if err := h.DB.Where("id IN ?", ids).Find(&doctors).Error; err != nil {
		h.Logger.Warn("failed to load doctor names for appointment list", zap.Error(err))
		return result
	}
	for _, d := range doctors {
		result[d.ID] = d
	}
	return result
}

// CancelAppointment cancels one of the authenticated patient's
// appointments. Cancelling an already-cancelled appointment is reported as
// an informational no-op, not an error.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	appointmentID := c.Param("id")
	err := h.Svc.Cancel(c.Request.Context(), appointmentID, profile.ID)
	if errors.Is(err, booking.ErrAlreadyCancelled) {
		utils.Success(c, "Appointment was already cancelled", nil)
		return
	}
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	h.Logger.Info("appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("patientId", profile.ID),
	)
	utils.Success(c, "Appointment cancelled successfully", nil)
}

// RescheduleAppointmentRequest represents the request body for moving an
// appointment to a new slot with the same doctor.
type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// RescheduleAppointment moves one of the authenticated patient's
// appointments to a different open slot of the same doctor.
func (h *PatientHandler) RescheduleAppointment(c *gin.Context) {
	profile, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointmentID := c.Param("id")
	appt, err := h.Svc.Reschedule(c.Request.Context(), appointmentID, profile.ID, req.Date, req.Time)
	if err != nil {
		respondBookingError(c, h.Logger, err)
		return
	}

	h.Logger.Info("appointment rescheduled",
		zap.String("appointmentId", appointmentID),
		zap.String("patientId", profile.ID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	utils.Success(c, "Appointment rescheduled successfully", appt)
}
