package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recognised values for MedicalProfile.Sex. Anything else is stored as the
// free-text value submitted alongside it.
const (
	SexFemale   = "Female"
	SexMale     = "Male"
	SexIntersex = "Intersex"
)

var SexChoices = []string{SexFemale, SexMale, SexIntersex}

// IsSexChoice reports whether sex is one of SexChoices.
func IsSexChoice(sex string) bool {
	for _, c := range SexChoices {
		if c == sex {
			return true
		}
	}
	return false
}

// MedicalProfile is owned by exactly one Person.
type MedicalProfile struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Sex               string     `gorm:"type:varchar(50)" json:"sex"`
	Medications       string     `gorm:"type:varchar(200)" json:"medications,omitempty"`
	Allergies         string     `gorm:"type:varchar(200)" json:"allergies,omitempty"`
	MedicalConditions string     `gorm:"type:varchar(200)" json:"medical_conditions,omitempty"`
	FamilyHistory     string     `gorm:"type:varchar(200)" json:"family_history,omitempty"`
	AdditionalInfo    string     `gorm:"type:varchar(400)" json:"additional_info,omitempty"`
	InsuranceRecordID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"insurance_record_id,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	InsuranceRecord *InsuranceRecord `gorm:"foreignKey:InsuranceRecordID" json:"insurance_record,omitempty"`
}

func (MedicalProfile) TableName() string {
	return "medical_profiles"
}

func (m *MedicalProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// InsuranceRecord is owned by exactly one MedicalProfile.
type InsuranceRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PolicyNumber string    `gorm:"type:varchar(200)" json:"policy_number"`
	Company      string    `gorm:"type:varchar(200)" json:"company"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InsuranceRecord) TableName() string {
	return "insurance_records"
}

func (i *InsuranceRecord) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// EmergencyContact is owned by exactly one Person.
type EmergencyContact struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"type:varchar(50)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(50)" json:"last_name"`
	PhoneNumber  string    `gorm:"type:varchar(30)" json:"phone_number"`
	Relationship string    `gorm:"type:varchar(30)" json:"relationship"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

func (e *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
