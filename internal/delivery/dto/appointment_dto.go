package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// SubmitAppointmentRequest creates or edits an appointment. Date accepts
// RFC 3339 or a naive "2006-01-02 15:04" form read in the clinic timezone.
// Omitted participants default to the requesting person.
type SubmitAppointmentRequest struct {
	Date            string     `json:"date"`
	DurationMinutes int        `json:"duration"`
	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID              `json:"id"`
	StartAt         time.Time              `json:"start_at"`
	EndAt           time.Time              `json:"end_at"`
	DurationMinutes int                    `json:"duration"`
	Doctor          *PersonSummaryResponse `json:"doctor,omitempty"`
	Patient         *PersonSummaryResponse `json:"patient,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type ScheduleResponse struct {
	Future []AppointmentResponse `json:"future"`
	Past   []AppointmentResponse `json:"past"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
