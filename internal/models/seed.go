package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@hospital.com"
	defaultAdminPassword = "admin123"
)

// SeedDefaultAdmin creates the bootstrap admin account if no user with the
// default admin email exists yet. Safe to call on every startup.
func SeedDefaultAdmin(db *gorm.DB) error {
	var existing User
	err := db.Where("email = ?", defaultAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	admin := User{
		Email:  defaultAdminEmail,
		Role:   RoleAdmin,
		Status: StatusActive,
	}
	if err := admin.SetPassword(defaultAdminPassword); err != nil {
		return err
	}
	return db.Create(&admin).Error
}

// SeedDemoData populates a small demo dataset: departments, doctors with
// profiles, patients, availability for the next three days and a few
// appointments with treatments. Every step is idempotent so the seeder can
// be re-run against an existing database.
func SeedDemoData(db *gorm.DB) error {
	departments := []Department{
		{Name: "Cardiology", Description: "Heart and blood vessel related issues."},
		{Name: "Neurology", Description: "Brain and nervous system."},
		{Name: "Orthopedics", Description: "Bones and joints."},
		{Name: "Pediatrics", Description: "Child health and development."},
		{Name: "Dermatology", Description: "Skin, hair and nails."},
	}
	deptIDs := map[string]string{}
	for i := range departments {
		if err := db.Where(Department{Name: departments[i].Name}).
			FirstOrCreate(&departments[i]).Error; err != nil {
			return err
		}
		deptIDs[departments[i].Name] = departments[i].ID
	}

	type doctorDef struct {
		Email          string
		Password       string
		Name           string
		Department     string
		Specialization string
		Phone          string
		Bio            string
	}
	doctorDefs := []doctorDef{
		{
			Email:          "dr.cardiac@hospital.com",
			Password:       "doctor123",
			Name:           "Dr. Alice Cardio",
			Department:     "Cardiology",
			Specialization: "Interventional Cardiologist",
			Phone:          "1111111111",
			Bio:            "Specialist in heart failure and coronary interventions.",
		},
		{
			Email:          "dr.neuro@hospital.com",
			Password:       "doctor123",
			Name:           "Dr. Brian Neuro",
			Department:     "Neurology",
			Specialization: "Neurologist",
			Phone:          "2222222222",
			Bio:            "Focus on epilepsy and movement disorders.",
		},
		{
			Email:          "dr.ortho@hospital.com",
			Password:       "doctor123",
			Name:           "Dr. Charlie Ortho",
			Department:     "Orthopedics",
			Specialization: "Orthopedic Surgeon",
			Phone:          "3333333333",
			Bio:            "Joint replacement and sports injuries.",
		},
	}

	doctorIDs := map[string]string{}
	for _, d := range doctorDefs {
		user, err := ensureUser(db, d.Email, d.Password, RoleDoctor)
		if err != nil {
			return err
		}
		deptID := deptIDs[d.Department]
		profile := DoctorProfile{
			UserID:         user.ID,
			DepartmentID:   &deptID,
			Name:           d.Name,
			Specialization: d.Specialization,
			Phone:          d.Phone,
			Bio:            d.Bio,
		}
		if err := db.Where(DoctorProfile{UserID: user.ID}).
			FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		doctorIDs[d.Email] = profile.ID
	}

	type patientDef struct {
		Email     string
		Password  string
		Name      string
		Age       int
		Gender    string
		Phone     string
		Address   string
		Emergency string
	}
	patientDefs := []patientDef{
		{
			Email:     "john.doe@example.com",
			Password:  "patient123",
			Name:      "John Doe",
			Age:       35,
			Gender:    "Male",
			Phone:     "4444444444",
			Address:   "123 Main Street",
			Emergency: "Jane Doe - 5555555555",
		},
		{
			Email:     "jane.smith@example.com",
			Password:  "patient123",
			Name:      "Jane Smith",
			Age:       29,
			Gender:    "Female",
			Phone:     "6666666666",
			Address:   "456 Park Lane",
			Emergency: "John Smith - 7777777777",
		},
	}

	patientIDs := map[string]string{}
	for _, p := range patientDefs {
		user, err := ensureUser(db, p.Email, p.Password, RolePatient)
		if err != nil {
			return err
		}
		age := p.Age
		profile := PatientProfile{
			UserID:           user.ID,
			Name:             p.Name,
			Age:              &age,
			Gender:           p.Gender,
			Phone:            p.Phone,
			Address:          p.Address,
			EmergencyContact: p.Emergency,
		}
		if err := db.Where(PatientProfile{UserID: user.ID}).
			FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		patientIDs[p.Email] = profile.ID
	}

	// Availability: next 3 days, 10:00 and 11:00, for every demo doctor.
	today := time.Now()
	for _, doctorID := range doctorIDs {
		for offset := 0; offset < 3; offset++ {
			date := today.AddDate(0, 0, offset).Format("2006-01-02")
			for _, t := range []string{"10:00", "11:00"} {
				slot := AvailabilitySlot{
					DoctorID:    doctorID,
					Date:        date,
					Time:        t,
					IsAvailable: true,
				}
				if err := db.Where(AvailabilitySlot{DoctorID: doctorID, Date: date, Time: t}).
					FirstOrCreate(&slot).Error; err != nil {
					return err
				}
			}
		}
	}

	type apptDef struct {
		PatientEmail string
		DoctorEmail  string
		DaysFromNow  int
		Status       AppointmentStatus
		Diagnosis    string
		Prescription string
	}
	apptDefs := []apptDef{
		{
			PatientEmail: "john.doe@example.com",
			DoctorEmail:  "dr.cardiac@hospital.com",
			DaysFromNow:  -5,
			Status:       StatusCompleted,
			Diagnosis:    "Hypertension, well controlled",
			Prescription: "Amlodipine 5mg once daily",
		},
		{
			PatientEmail: "jane.smith@example.com",
			DoctorEmail:  "dr.neuro@hospital.com",
			DaysFromNow:  -2,
			Status:       StatusCompleted,
			Diagnosis:    "Migraine without aura",
			Prescription: "Paracetamol + lifestyle changes",
		},
		{
			PatientEmail: "john.doe@example.com",
			DoctorEmail:  "dr.ortho@hospital.com",
			DaysFromNow:  1,
			Status:       StatusBooked,
		},
	}

	for _, a := range apptDefs {
		doctorID := doctorIDs[a.DoctorEmail]
		var doctor DoctorProfile
		if err := db.First(&doctor, "id = ?", doctorID).Error; err != nil {
			return err
		}
		appt := Appointment{
			PatientID:    patientIDs[a.PatientEmail],
			DoctorID:     doctorID,
			DepartmentID: doctor.DepartmentID,
			Date:         today.AddDate(0, 0, a.DaysFromNow).Format("2006-01-02"),
			Time:         "10:00",
			Status:       a.Status,
		}
		if err := db.Where(Appointment{
			PatientID: appt.PatientID,
			DoctorID:  appt.DoctorID,
			Date:      appt.Date,
			Time:      appt.Time,
		}).FirstOrCreate(&appt).Error; err != nil {
			return err
		}

		if a.Status == StatusCompleted {
			treatment := Treatment{
				AppointmentID: appt.ID,
				Diagnosis:     a.Diagnosis,
				Prescription:  a.Prescription,
				Notes:         "Follow-up in 2 weeks.",
			}
			if err := db.Where(Treatment{AppointmentID: appt.ID}).
				FirstOrCreate(&treatment).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func ensureUser(db *gorm.DB, email, password string, role Role) (*User, error) {
	var user User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = User{Email: email, Role: role, Status: StatusActive}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
