package handlers

import (
	"errors"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminHandler handles administrative requests: account management, doctor
// and patient provisioning, departments, and hospital-wide appointment
// oversight.
type AdminHandler struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{DB: db, Logger: logger}
}

// ListUsers lists user accounts, optionally filtered by role and status.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var users []models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUser returns a single user account together with its role profile.
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	result := gin.H{"user": user.Sanitize()}
	switch user.Role {
	case models.RoleDoctor:
		var profile models.DoctorProfile
		if err := h.DB.Preload("Department").Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			result["profile"] = profile
		}
	case models.RolePatient:
		var profile models.PatientProfile
		if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			result["profile"] = profile
		}
	}
	utils.Success(c, "User fetched successfully", result)
}

// UpdateUserStatusRequest represents the request body for activating or
// blacklisting an account.
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

// UpdateUserStatus activates or blacklists a user account. Admins cannot
// change their own status, so the last active admin cannot lock everyone
// out.
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID := c.Param("id")

	requesterID, _ := middleware.GetUserIDFromContext(c)
	if requesterID == userID {
		utils.BadRequest(c, "You cannot change the status of your own account")
		return
	}

	var req UpdateUserStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Status != models.StatusActive && req.Status != models.StatusBlacklisted {
		utils.BadRequest(c, "Status must be 'active' or 'blacklisted'")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	user.Status = req.Status
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user status: "+err.Error())
		return
	}

	h.Logger.Info("user status changed",
		zap.String("userId", user.ID),
		zap.String("status", string(user.Status)),
		zap.String("changedBy", requesterID),
	)
	utils.Success(c, "User status updated successfully", user.Sanitize())
}

// CreateDoctorRequest represents the request body for provisioning a doctor
// account together with its profile.
type CreateDoctorRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Specialization string  `json:"specialization"`
	DepartmentID   *string `json:"departmentId"`
	Phone          string  `json:"phone"`
	Bio            string  `json:"bio"`
}

// CreateDoctor creates a doctor user account and its profile in one
// transaction.
func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	if req.DepartmentID != nil {
		var dept models.Department
		if err := h.DB.First(&dept, "id = ?", *req.DepartmentID).Error; err != nil {
			utils.BadRequest(c, "Department not found")
			return
		}
	}

	user := models.User{
		Email:  req.Email,
		Role:   models.RoleDoctor,
		Status: models.StatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	var profile models.DoctorProfile
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile = models.DoctorProfile{
			UserID:         user.ID,
			DepartmentID:   req.DepartmentID,
			Name:           req.Name,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			Bio:            req.Bio,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	h.Logger.Info("doctor account created",
		zap.String("userId", user.ID),
		zap.String("doctorId", profile.ID),
	)
	utils.Created(c, "Doctor created successfully", gin.H{
		"user":    user.Sanitize(),
		"profile": profile,
	})
}

// UpdateDoctorRequest represents the admin-editable doctor profile fields.
type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	DepartmentID   *string `json:"departmentId"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
}

// UpdateDoctor edits a doctor profile.
func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var profile models.DoctorProfile
	if err := h.DB.First(&profile, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdateDoctorRequest
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
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			profile.DepartmentID = nil
		} else {
			var dept models.Department
			if err := h.DB.First(&dept, "id = ?", *req.DepartmentID).Error; err != nil {
				utils.BadRequest(c, "Department not found")
				return
			}
			profile.DepartmentID = req.DepartmentID
		}
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}
	utils.Success(c, "Doctor updated successfully", profile)
}

// ListDoctors lists doctor profiles with their departments, optionally
// filtered by free-text search.
func (h *AdminHandler) ListDoctors(c *gin.Context) {
	query := h.DB.Model(&models.DoctorProfile{}).Preload("Department")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR specialization ILIKE ?", like, like)
	}

	var doctors []models.DoctorProfile
	if err := query.Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// ListPatients lists patient profiles, optionally filtered by free-text
// search over the name.
func (h *AdminHandler) ListPatients(c *gin.Context) {
	query := h.DB.Model(&models.PatientProfile{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var patients []models.PatientProfile
	if err := query.Order("name asc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// UpdatePatient edits a patient profile on the patient's behalf.
func (h *AdminHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var profile models.PatientProfile
	if err := h.DB.First(&profile, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
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

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}
	utils.Success(c, "Patient updated successfully", profile)
}

// ListDepartments lists all departments.
func (h *AdminHandler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("name asc").Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}
	utils.Success(c, "Departments fetched successfully", departments)
}

// DepartmentRequest represents the request body for creating or editing a
// department.
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDepartment creates a department.
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department := models.Department{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "A department with this name already exists")
		} else {
			utils.InternalServerError(c, "Failed to create department: "+err.Error())
		}
		return
	}
	utils.Created(c, "Department created successfully", department)
}

// UpdateDepartment edits a department.
func (h *AdminHandler) UpdateDepartment(c *gin.Context) {
	departmentID := c.Param("id")

	var department models.Department
	if err := h.DB.First(&department, "id = ?", departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department.Name = req.Name
	department.Description = req.Description
	if err := h.DB.Save(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "A department with this name already exists")
		} else {
			utils.InternalServerError(c, "Failed to update department: "+err.Error())
		}
		return
	}
	utils.Success(c, "Department updated successfully", department)
}

// AdminAppointmentView is an appointment enriched with both parties' names
// for hospital-wide oversight lists.
type AdminAppointmentView struct {
	models.Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

// ListAppointments lists appointments hospital-wide, optionally filtered by
// status, doctor, patient, or date range.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	query := h.DB.Model(&models.Appointment{}).Preload("Treatment")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID := c.Query("doctorId"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var appts []models.Appointment
	if err := query.Order("date desc, time desc").Find(&appts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	doctorIDs := make([]string, 0, len(appts))
	patientIDs := make([]string, 0, len(appts))
	seenDoctors := make(map[string]bool, len(appts))
	seenPatients := make(map[string]bool, len(appts))
	for _, appt := range appts {
		if !seenDoctors[appt.DoctorID] {
			seenDoctors[appt.DoctorID] = true
			doctorIDs = append(doctorIDs, appt.DoctorID)
		}
		if !seenPatients[appt.PatientID] {
			seenPatients[appt.PatientID] = true
			patientIDs = append(patientIDs, appt.PatientID)
		}
	}

	doctorNames := make(map[string]string, len(doctorIDs))
	if len(doctorIDs) > 0 {
		var doctors []models.DoctorProfile
		if err := h.DB.Where("id IN ?", doctorIDs).Find(&doctors).Error; err == nil {
			for _, d := range doctors {
				doctorNames[d.ID] = d.Name
			}
		}
	}
	patientNames := make(map[string]string, len(patientIDs))
	if len(patientIDs) > 0 {
		var patients []models.PatientProfile
		if err := h.DB.Where("id IN ?", patientIDs).Find(&patients).Error; err == nil {
			for _, p := range patients {
				patientNames[p.ID] = p.Name
			}
		}
	}

	views := make([]AdminAppointmentView, 0, len(appts))
	for _, appt := range appts {
		views = append(views, AdminAppointmentView{
			Appointment: appt,
			PatientName: patientNames[appt.PatientID],
			DoctorName:  doctorNames[appt.DoctorID],
		})
	}
	utils.Success(c, "Appointments fetched successfully", views)
}
