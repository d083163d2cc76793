package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	now                func() time.Time
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		now:                time.Now,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, nil)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}
	h.submit(w, r, &id)
}

func (h *AppointmentHandler) submit(w http.ResponseWriter, r *http.Request, existingID *uuid.UUID) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SubmitAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	appointment, err := h.appointmentUsecase.SubmitAppointment(r.Context(), actorID, &req, existingID)
	if err != nil {
		writeAppointmentError(w, err, "Failed to save appointment")
		return
	}

	if existingID != nil {
		response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
		return
	}
	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), actorID, id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), actorID, id); err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	schedule, err := h.appointmentUsecase.GetSchedule(r.Context(), actorID, h.now())
	if err != nil {
		writeAppointmentError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *AppointmentHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	upcoming, err := h.appointmentUsecase.GetUpcoming(r.Context(), actorID, h.now())
	if err != nil {
		writeAppointmentError(w, err, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", upcoming)
}

func appointmentIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return uuid.Nil, false
	}
	return id, true
}

func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvalidDateTime, usecase.ErrInvalidDuration, usecase.ErrParticipantRole:
		response.BadRequest(w, err.Error())
	case usecase.ErrPersonNotFound:
		response.NotFound(w, "Person not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrAppointmentNotOwned:
		response.Forbidden(w, err.Error())
	case usecase.ErrDoctorUnavailable, usecase.ErrPatientUnavailable:
		response.Conflict(w, err.Error())
	default:
		if errors.Is(err, service.ErrScheduleLockTimeout) {
			response.ServiceUnavailable(w, err.Error())
			return
		}
		response.InternalServerError(w, fallback)
	}
}
