package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type FacilityHandler struct {
	facilityUsecase usecase.FacilityUsecase
	validator       *validator.CustomValidator
}

func NewFacilityHandler(facilityUsecase usecase.FacilityUsecase, validator *validator.CustomValidator) *FacilityHandler {
	return &FacilityHandler{
		facilityUsecase: facilityUsecase,
		validator:       validator,
	}
}

func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetPersonIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	facility, err := h.facilityUsecase.CreateFacility(r.Context(), actorID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create facility")
		return
	}

	response.Success(w, http.StatusCreated, "Facility created successfully", facility)
}

func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.facilityUsecase.ListFacilities(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get facilities")
		return
	}

	response.Success(w, http.StatusOK, "Facilities retrieved successfully", facilities)
}
