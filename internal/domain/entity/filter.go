package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type ScheduleFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	From      *time.Time // inclusive
	To        *time.Time // exclusive
	Desc      bool
}

// PersonFilter narrows person listings.
type PersonFilter struct {
	FacilityID *uuid.UUID
	ActiveOnly bool
}
