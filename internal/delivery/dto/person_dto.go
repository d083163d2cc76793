package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// ProfileSubmissionRequest is the signup / edit-profile form. Required
// fields are checked by the usecase so that failures come back in a fixed
// order, which is why most fields carry no validate tag.
type ProfileSubmissionRequest struct {
	Email       string     `json:"email"`
	Password    string     `json:"password,omitempty" validate:"omitempty,min=6"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number"`
	BirthMonth  int        `json:"month"`
	BirthDay    int        `json:"day"`
	BirthYear   int        `json:"year"`
	Role        string     `json:"role" validate:"omitempty,oneof=patient doctor admin"`
	FacilityID  *uuid.UUID `json:"facility_id,omitempty"`

	// Insurance
	PolicyNumber string `json:"policy_number"`
	Company      string `json:"company"`

	// Medical
	Sex               string `json:"sex"`
	OtherSex          string `json:"other_sex"`
	Medications       string `json:"medications"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`
	FamilyHistory     string `json:"family_history"`
	AdditionalInfo    string `json:"additional_info"`

	// Doctor
	Specialty         string          `json:"specialty"`
	YearsOfExperience int             `json:"years_of_experience" validate:"gte=0"`
	Fee               decimal.Decimal `json:"fee"`
	Degree            string          `json:"degree"`
	VisitDays         string          `json:"visit_days"`
	TwoShift          string          `json:"two_shift" validate:"omitempty,oneof=Yes No"`
	FirstShiftStart   string          `json:"first_shift_start" validate:"omitempty,clock12"`
	FirstShiftEnd     string          `json:"first_shift_end" validate:"omitempty,clock12"`
	SecondShiftStart  string          `json:"second_shift_start" validate:"omitempty,clock12"`
	SecondShiftEnd    string          `json:"second_shift_end" validate:"omitempty,clock12"`

	EmergencyContact *EmergencyContactRequest `json:"emergency_contact,omitempty"`
}

type EmergencyContactRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	Relationship string `json:"relationship"`
}

// IsEmpty reports whether no emergency contact field was submitted.
func (r *EmergencyContactRequest) IsEmpty() bool {
	return r == nil || (r.FirstName == "" && r.LastName == "" && r.PhoneNumber == "" && r.Relationship == "")
}

// Response DTOs

type PersonResponse struct {
	ID               uuid.UUID                 `json:"id"`
	Email            string                    `json:"email"`
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	PhoneNumber      string                    `json:"phone_number"`
	DateOfBirth      string                    `json:"date_of_birth"`
	Roles            []string                  `json:"roles"`
	IsActive         bool                      `json:"is_active"`
	MedicalProfile   *MedicalProfileResponse   `json:"medical_profile,omitempty"`
	DoctorProfile    *DoctorProfileResponse    `json:"doctor_profile,omitempty"`
	EmergencyContact *EmergencyContactResponse `json:"emergency_contact,omitempty"`
	Facility         *FacilityResponse         `json:"facility,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// PersonSummaryResponse is the short form used inside lists and appointments.
type PersonSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Roles    []string  `json:"roles"`
}

type PersonListResponse struct {
	People []PersonSummaryResponse `json:"people"`
	Total  int                     `json:"total"`
}

type MedicalProfileResponse struct {
	ID                uuid.UUID                `json:"id"`
	Sex               string                   `json:"sex"`
	Medications       string                   `json:"medications,omitempty"`
	Allergies         string                   `json:"allergies,omitempty"`
	MedicalConditions string                   `json:"medical_conditions,omitempty"`
	FamilyHistory     string                   `json:"family_history,omitempty"`
	AdditionalInfo    string                   `json:"additional_info,omitempty"`
	Insurance         *InsuranceRecordResponse `json:"insurance,omitempty"`
}

type InsuranceRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	PolicyNumber string    `json:"policy_number"`
	Company      string    `json:"company"`
}

type DoctorProfileResponse struct {
	ID                uuid.UUID       `json:"id"`
	Specialty         string          `json:"specialty"`
	YearsOfExperience int             `json:"years_of_experience"`
	Fee               decimal.Decimal `json:"fee"`
	Degree            string          `json:"degree"`
	VisitDays         string          `json:"visit_days"`
	TwoShift          string          `json:"two_shift" validate:"omitempty,oneof=Yes No"`
	FirstShiftStart   string          `json:"first_shift_start" validate:"omitempty,clock12"`
	FirstShiftEnd     string          `json:"first_shift_end" validate:"omitempty,clock12"`
	SecondShiftStart  string          `json:"second_shift_start,omitempty"`
	SecondShiftEnd    string          `json:"second_shift_end,omitempty"`
}

type EmergencyContactResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Relationship string    `json:"relationship"`
}

// ProfileOptionsResponse lists the choices offered by the signup form.
type ProfileOptionsResponse struct {
	Roles       []string `json:"roles"`
	Sexes       []string `json:"sexes"`
	Specialties []string `json:"specialties"`
	VisitDays   []string `json:"visit_days"`
	TwoShift    []string `json:"two_shift" validate:"omitempty,oneof=Yes No"`
	ShiftTimes  []string `json:"shift_times"`
	Years       []int    `json:"years"`
}
