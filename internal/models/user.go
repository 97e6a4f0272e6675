package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// UserStatus enum. Blacklisted accounts keep their data but are locked out
// of every authenticated route.
type UserStatus string

const (
	StatusActive      UserStatus = "active"
	StatusBlacklisted UserStatus = "blacklisted"
)

// User represents an identity record. Each user owns exactly one
// role-specific profile (DoctorProfile or PatientProfile).
type User struct {
	BaseModel
	Email    string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role     Role       `gorm:"size:20;default:'patient'" json:"role"`
	Status   UserStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt string     `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
