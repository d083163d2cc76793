package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is any user of the system. Patients, doctors and admins are told
// apart by their Roles only.
type Person struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"type:text;not null" json:"-"`
	FirstName          string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName           string     `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber        string     `gorm:"type:varchar(30);not null" json:"phone_number"`
	DateOfBirth        time.Time  `gorm:"type:date" json:"date_of_birth"`
	Roles              RoleSet    `gorm:"type:varchar(100);not null;index" json:"roles"`
	IsActive           bool       `gorm:"not null;default:true;index" json:"is_active"`
	MedicalProfileID   *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"medical_profile_id,omitempty"`
	DoctorProfileID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"doctor_profile_id,omitempty"`
	EmergencyContactID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"emergency_contact_id,omitempty"`
	FacilityID         *uuid.UUID `gorm:"type:uuid;index" json:"facility_id,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	MedicalProfile   *MedicalProfile   `gorm:"foreignKey:MedicalProfileID" json:"medical_profile,omitempty"`
	DoctorProfile    *DoctorProfile    `gorm:"foreignKey:DoctorProfileID" json:"doctor_profile,omitempty"`
	EmergencyContact *EmergencyContact `gorm:"foreignKey:EmergencyContactID" json:"emergency_contact,omitempty"`
	Facility         *Facility         `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
}

func (Person) TableName() string {
	return "persons"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Person) HasRole(role Role) bool {
	return p != nil && p.Roles.Has(role)
}

func (p *Person) IsAdmin() bool   { return p.HasRole(RoleAdmin) }
func (p *Person) IsDoctor() bool  { return p.HasRole(RoleDoctor) }
func (p *Person) IsPatient() bool { return p.HasRole(RolePatient) }

func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// CanEdit reports whether p may view and edit target's records: themself,
// anyone when admin, and any patient when doctor.
func (p *Person) CanEdit(target *Person) bool {
	if p == nil || target == nil {
		return false
	}
	return p.ID == target.ID ||
		p.IsAdmin() ||
		(p.IsDoctor() && target.IsPatient())
}
