package handlers

import (
	"errors"

	"hospital-management-server/internal/booking"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// doctorProfileFromContext resolves the authenticated user's doctor profile.
// It writes the error response and returns false when the profile cannot be
// resolved.
func doctorProfileFromContext(c *gin.Context, db *gorm.DB) (*models.DoctorProfile, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var profile models.DoctorProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &profile, true
}

// patientProfileFromContext resolves the authenticated user's patient profile.
func patientProfileFromContext(c *gin.Context, db *gorm.DB) (*models.PatientProfile, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var profile models.PatientProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &profile, true
}

// respondBookingError translates a declined booking outcome into the HTTP
// response the caller should see. Informational no-op outcomes
// (ErrSlotExists, ErrAlreadyCancelled) are handled by the callers themselves
// since they are success responses, not errors.
func respondBookingError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case booking.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.Conflict(c, "The selected slot is not available. Please pick another slot.")
	case errors.Is(err, booking.ErrSlotTaken):
		utils.Conflict(c, "The slot was just taken by another booking. Please pick another slot.")
	case errors.Is(err, booking.ErrNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, booking.ErrNotOwner):
		utils.NotFound(c, "Appointment not found for this account")
	default:
		logger.Error("booking operation failed", zap.Error(err))
		utils.InternalServerError(c, "Internal error processing the booking operation")
	}
}
