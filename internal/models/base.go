package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Database connection instance
var DB *gorm.DB

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	// TranslateError lets callers match constraint violations against
	// gorm.ErrDuplicatedKey instead of driver-specific error codes.
	DB, err = gorm.Open(postgres.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Department{},
		&DoctorProfile{},
		&PatientProfile{},
		&AvailabilitySlot{},
		&Appointment{},
		&Treatment{},
	)
	if err != nil {
		return nil, err
	}

	// A cancelled appointment must not keep its slot unbookable, so the
	// double-booking constraint only covers active rows. AutoMigrate cannot
	// express a partial index, hence raw SQL.
	err = DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		 ON appointments (doctor_id, date, time)
		 WHERE status <> 'Cancelled'`,
	).Error
	if err != nil {
		return nil, err
	}

	return DB, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
