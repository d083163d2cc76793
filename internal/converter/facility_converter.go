package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// FacilityToResponse converts a Facility entity to FacilityResponse DTO
func FacilityToResponse(facility *entity.Facility) *dto.FacilityResponse {
	if facility == nil {
		return nil
	}

	return &dto.FacilityResponse{
		ID:         facility.ID,
		Name:       facility.Name,
		Address:    facility.Address,
		City:       facility.City,
		Region:     facility.Region,
		PostalCode: facility.PostalCode,
		CreatedAt:  facility.CreatedAt,
	}
}

func FacilitiesToResponses(facilities []entity.Facility) []dto.FacilityResponse {
	responses := make([]dto.FacilityResponse, len(facilities))
	for i := range facilities {
		responses[i] = *FacilityToResponse(&facilities[i])
	}
	return responses
}
