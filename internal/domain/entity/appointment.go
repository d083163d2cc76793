package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoundaryPolicy decides whether two intervals that only touch at an
// endpoint are in conflict.
type BoundaryPolicy string

const (
	// BoundaryInclusive treats touching endpoints as a conflict, so an
	// appointment ending at 10:30 blocks one starting at 10:30.
	BoundaryInclusive BoundaryPolicy = "inclusive"
	// BoundaryExclusive allows back-to-back appointments.
	BoundaryExclusive BoundaryPolicy = "exclusive"
)

// DefaultBoundaryPolicy is the policy used when none is configured.
const DefaultBoundaryPolicy = BoundaryInclusive

// ParseBoundaryPolicy falls back to DefaultBoundaryPolicy for unknown input.
func ParseBoundaryPolicy(s string) BoundaryPolicy {
	switch BoundaryPolicy(s) {
	case BoundaryInclusive, BoundaryExclusive:
		return BoundaryPolicy(s)
	}
	return DefaultBoundaryPolicy
}

// IntervalsOverlap reports whether [s1, e1) and [s2, e2) conflict under policy.
func IntervalsOverlap(policy BoundaryPolicy, s1, e1, s2, e2 time.Time) bool {
	if policy == BoundaryExclusive {
		return s1.Before(e2) && s2.Before(e1)
	}
	return !s1.After(e2) && !s2.After(e1)
}

// MaxDurationMinutes caps a single appointment at one day, which keeps the
// derived end well inside time.Duration range and strictly after the start.
const MaxDurationMinutes = 24 * 60

// ValidDuration reports whether minutes is in (0, MaxDurationMinutes].
func ValidDuration(minutes int) bool {
	return minutes > 0 && minutes <= MaxDurationMinutes
}

// Appointment links one doctor and one patient for DurationMinutes starting
// at StartAt. The end is derived, never stored.
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	StartAt         time.Time `gorm:"not null;index" json:"start_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Person `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Person `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// End returns StartAt plus the duration.
func (a *Appointment) End() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Conflicts reports whether the proposed interval starting at start and
// lasting durationMinutes collides with a under policy.
func (a *Appointment) Conflicts(policy BoundaryPolicy, start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return IntervalsOverlap(policy, start, end, a.StartAt, a.End())
}

// HasParticipant reports whether personID is the doctor or the patient.
func (a *Appointment) HasParticipant(personID uuid.UUID) bool {
	return a.DoctorID == personID || a.PatientID == personID
}

// ChangedFields lists which of date, patient, duration and doctor differ
// between a and the proposed values, in that order.
func (a *Appointment) ChangedFields(start time.Time, durationMinutes int, doctorID, patientID uuid.UUID) []string {
	var changed []string
	if !a.StartAt.Equal(start) {
		changed = append(changed, "date")
	}
	if a.PatientID != patientID {
		changed = append(changed, "patient")
	}
	if a.DurationMinutes != durationMinutes {
		changed = append(changed, "duration")
	}
	if a.DoctorID != doctorID {
		changed = append(changed, "doctor")
	}
	return changed
}
