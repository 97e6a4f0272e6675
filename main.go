package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hospital-management-server/internal/booking"
	"hospital-management-server/internal/config"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/routes"
)

func main() {
	seedDemo := flag.Bool("seed-demo", false, "seed demo departments, doctors, patients, slots and appointments, then continue serving")
	flag.Parse()

	// Load environment variables; a missing .env is fine in deployed
	// environments where variables come from the process environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := models.SeedDefaultAdmin(db); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}
	if *seedDemo {
		if err := models.SeedDemoData(db); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}

	// Booking engine: all appointment and slot mutations go through it.
	svc := booking.NewService(
		booking.NewSlotRepoGorm(db),
		booking.NewAppointmentRepoGorm(db),
		booking.NewDoctorRepoGorm(db),
	)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB, config and the booking service to let
	// routes.go create the handlers
	routes.SetupRoutes(router, db, cfg, svc, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
