package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TwoShiftYes is the only two_shift answer that enables the second shift.
const (
	TwoShiftYes = "Yes"
	TwoShiftNo  = "No"
)

var (
	Specialties = []string{
		"Dentist",
		"Gynecologist/Obstetrician",
		"General Physician",
		"Dermatologist",
		"Ear-Nose-Throat(ENT)",
		"Homoeopath",
		"Ayurveda",
	}

	VisitDays = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}

	TwoShiftAnswers = []string{TwoShiftYes, TwoShiftNo}

	// ShiftTimes are the half-hour slots offered for shift boundaries,
	// starting from the morning shift.
	ShiftTimes = []string{
		"7AM", "7.30AM", "8AM", "8.30AM", "9AM", "9.30AM", "10AM", "10.30AM",
		"11AM", "11.30AM", "12PM", "12.30PM", "1PM", "1.30PM", "2PM", "2.30PM",
		"3PM", "3.30PM", "4PM", "4.30PM", "5PM", "5.30PM", "6PM", "6.30PM",
		"7PM", "7.30PM", "8PM", "8.30PM", "9PM", "9.30PM", "10PM", "10.30PM",
		"11PM", "11.30PM", "12AM", "12.30AM", "1AM", "1.30AM", "2AM", "2.30AM",
		"3AM", "3.30AM", "4AM", "4.30AM", "5AM", "5.30AM", "6AM", "6.30AM",
	}
)

// DoctorProfile is owned by exactly one Person.
type DoctorProfile struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Specialty         string          `gorm:"type:varchar(100);index" json:"specialty"`
	YearsOfExperience int             `gorm:"not null;default:0" json:"years_of_experience"`
	Fee               decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	Degree            string          `gorm:"type:varchar(200)" json:"degree"`
	VisitDays         string          `gorm:"type:varchar(200)" json:"visit_days"`
	TwoShift          string          `gorm:"type:varchar(10)" json:"two_shift"`
	FirstShiftStart   string          `gorm:"type:varchar(10)" json:"first_shift_start"`
	FirstShiftEnd     string          `gorm:"type:varchar(10)" json:"first_shift_end"`
	SecondShiftStart  string          `gorm:"type:varchar(10)" json:"second_shift_start"`
	SecondShiftEnd    string          `gorm:"type:varchar(10)" json:"second_shift_end"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

func (d *DoctorProfile) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// HasTwoShifts reports whether the second shift window is in use.
func (d *DoctorProfile) HasTwoShifts() bool {
	return d.TwoShift == TwoShiftYes
}
