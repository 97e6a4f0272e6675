package routes

import (
	"hospital-management-server/internal/booking"
	"hospital-management-server/internal/config"
	"hospital-management-server/internal/handlers"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, svc *booking.Service, logger *zap.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, logger)
	doctorHandler := handlers.NewDoctorHandler(db, svc, logger)
	patientHandler := handlers.NewPatientHandler(db, svc, logger)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes. ActiveUserMiddleware re-checks account status on
	// every request so a blacklisted user is cut off immediately.
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg), middleware.ActiveUserMiddleware(db))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Admin-only routes
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", adminHandler.ListUsers)
			adminRoutes.GET("/users/:id", adminHandler.GetUser)
			adminRoutes.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)

			adminRoutes.GET("/doctors", adminHandler.ListDoctors)
			adminRoutes.POST("/doctors", adminHandler.CreateDoctor)
			adminRoutes.PUT("/doctors/:id", adminHandler.UpdateDoctor)

			adminRoutes.GET("/patients", adminHandler.ListPatients)
			adminRoutes.PUT("/patients/:id", adminHandler.UpdatePatient)

			adminRoutes.GET("/departments", adminHandler.ListDepartments)
			adminRoutes.POST("/departments", adminHandler.CreateDepartment)
			adminRoutes.PUT("/departments/:id", adminHandler.UpdateDepartment)

			adminRoutes.GET("/appointments", adminHandler.ListAppointments)
		}

		// Doctor-only routes
		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/profile", doctorHandler.GetMyProfile)
			doctorRoutes.PUT("/profile", doctorHandler.UpdateMyProfile)

			doctorRoutes.GET("/slots", doctorHandler.MySlots)
			doctorRoutes.POST("/slots", doctorHandler.AddSlot)

			doctorRoutes.GET("/appointments", doctorHandler.MyAppointments)
			doctorRoutes.PATCH("/appointments/:id/status", doctorHandler.UpdateAppointmentStatus)

			doctorRoutes.GET("/patients/:id/history", doctorHandler.PatientHistory)
		}

		// Patient-only routes
		patientRoutes := private.Group("/patient")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/profile", patientHandler.GetMyProfile)
			patientRoutes.PUT("/profile", patientHandler.UpdateMyProfile)

			patientRoutes.GET("/doctors", patientHandler.ListDoctors)
			patientRoutes.GET("/doctors/:id/availability", patientHandler.GetDoctorAvailability)

			patientRoutes.GET("/appointments", patientHandler.MyAppointments)
			patientRoutes.POST("/appointments", patientHandler.BookAppointment)
			patientRoutes.PATCH("/appointments/:id/cancel", patientHandler.CancelAppointment)
			patientRoutes.PATCH("/appointments/:id/reschedule", patientHandler.RescheduleAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
