package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PersonHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewPersonHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *PersonHandler {
	return &PersonHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

func (h *PersonHandler) GetProfileOptions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Profile options retrieved successfully", h.profileUsecase.ProfileOptions())
}

// GetPerson serves both /people/me and /people/{id}
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	targetID, ok := personIDFromPath(w, r, actorID)
	if !ok {
		return
	}

	person, err := h.profileUsecase.GetPerson(r.Context(), actorID, targetID)
	if err != nil {
		writeProfileError(w, err, "Failed to get person")
		return
	}

	response.Success(w, http.StatusOK, "Person retrieved successfully", person)
}

// UpdatePerson serves both PUT /people/me and PUT /people/{id}
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	targetID, ok := personIDFromPath(w, r, actorID)
	if !ok {
		return
	}

	var req dto.ProfileSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	person, err := h.profileUsecase.ApplyProfileSubmission(r.Context(), &actorID, &targetID, &req)
	if err != nil {
		writeProfileError(w, err, "Failed to update person")
		return
	}

	response.Success(w, http.StatusOK, "Person updated successfully", person)
}

// CreatePerson lets an admin register someone else, including admins.
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ProfileSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	person, err := h.profileUsecase.ApplyProfileSubmission(r.Context(), &actorID, nil, &req)
	if err != nil {
		writeProfileError(w, err, "Failed to create person")
		return
	}

	response.Success(w, http.StatusCreated, "Person created successfully", person)
}

func (h *PersonHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "Invalid active flag")
			return
		}
		activeOnly = parsed
	}

	patients, err := h.profileUsecase.ListPatients(r.Context(), actorID, activeOnly)
	if err != nil {
		writeProfileError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	role, ok := entity.ParseRole(query.Get("role"))
	if !ok {
		response.BadRequest(w, "Invalid role")
		return
	}

	var facilityID *uuid.UUID
	if raw := query.Get("facility_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid facility ID")
			return
		}
		facilityID = &parsed
	}

	people, err := h.profileUsecase.ListPeople(r.Context(), role, facilityID)
	if err != nil {
		response.InternalServerError(w, "Failed to get people")
		return
	}

	response.Success(w, http.StatusOK, "People retrieved successfully", people)
}

// personIDFromPath returns the {id} path variable, or self when the route
// has none.
func personIDFromPath(w http.ResponseWriter, r *http.Request, self uuid.UUID) (uuid.UUID, bool) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return self, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return uuid.Nil, false
	}
	return id, true
}

func writeProfileError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrMissingRequiredFields,
		usecase.ErrInvalidEmail,
		usecase.ErrMissingInsuranceInfo:
		response.BadRequest(w, err.Error())
	case usecase.ErrEmailAlreadyExists:
		response.Conflict(w, err.Error())
	case usecase.ErrRoleNotAssignable, usecase.ErrProfileNotEditable:
		response.Forbidden(w, err.Error())
	case usecase.ErrPersonNotFound:
		response.NotFound(w, "Person not found")
	case usecase.ErrFacilityNotFound:
		response.NotFound(w, "Facility not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
