// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"io"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every person made by NewPerson.
const Password = "secret123"

// NewTestDB opens a private in-memory SQLite database with the full schema.
// A single connection is used so every query sees the same database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Facility{},
		&entity.InsuranceRecord{},
		&entity.MedicalProfile{},
		&entity.DoctorProfile{},
		&entity.EmergencyContact{},
		&entity.Person{},
		&entity.Appointment{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewPerson stores an active person holding roles. Patients get a medical
// profile with insurance, doctors a doctor profile.
func NewPerson(t testing.TB, db *gorm.DB, email string, roles ...entity.Role) *entity.Person {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	person := &entity.Person{
		Email:       email,
		Password:    string(hashed),
		FirstName:   "Test",
		LastName:    email,
		PhoneNumber: "5550100",
		DateOfBirth: time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		Roles:       entity.NewRoleSet(roles...),
		IsActive:    true,
	}

	if person.IsPatient() {
		insurance := &entity.InsuranceRecord{PolicyNumber: "POL-1", Company: "Acme Health"}
		if err := db.Create(insurance).Error; err != nil {
			t.Fatalf("create insurance record: %v", err)
		}
		medical := &entity.MedicalProfile{Sex: entity.SexFemale, InsuranceRecordID: &insurance.ID}
		if err := db.Create(medical).Error; err != nil {
			t.Fatalf("create medical profile: %v", err)
		}
		person.MedicalProfileID = &medical.ID
	}
	if person.IsDoctor() {
		doctor := &entity.DoctorProfile{Specialty: "Dentist", TwoShift: entity.TwoShiftNo}
		if err := db.Create(doctor).Error; err != nil {
			t.Fatalf("create doctor profile: %v", err)
		}
		person.DoctorProfileID = &doctor.ID
	}

	if err := db.Omit("MedicalProfile", "DoctorProfile", "EmergencyContact", "Facility").Create(person).Error; err != nil {
		t.Fatalf("create person: %v", err)
	}
	return person
}

// NewAppointment stores an appointment as is, bypassing every check.
func NewAppointment(t testing.TB, db *gorm.DB, doctorID, patientID uuid.UUID, start time.Time, durationMinutes int) *entity.Appointment {
	t.Helper()

	appointment := &entity.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		StartAt:         start.UTC(),
		DurationMinutes: durationMinutes,
	}
	if err := db.Omit("Doctor", "Patient").Create(appointment).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return appointment
}
