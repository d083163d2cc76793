package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// PersonToResponse converts a Person entity to PersonResponse DTO
// Includes sub-profiles and facility if they are loaded
func PersonToResponse(person *entity.Person) *dto.PersonResponse {
	if person == nil {
		return nil
	}

	response := &dto.PersonResponse{
		ID:          person.ID,
		Email:       person.Email,
		FirstName:   person.FirstName,
		LastName:    person.LastName,
		PhoneNumber: person.PhoneNumber,
		Roles:       person.Roles.Strings(),
		IsActive:    person.IsActive,
		CreatedAt:   person.CreatedAt,
		UpdatedAt:   person.UpdatedAt,
	}
	if !person.DateOfBirth.IsZero() {
		response.DateOfBirth = person.DateOfBirth.Format("2006-01-02")
	}

	if mp := person.MedicalProfile; mp != nil {
		response.MedicalProfile = &dto.MedicalProfileResponse{
			ID:                mp.ID,
			Sex:               mp.Sex,
			Medications:       mp.Medications,
			Allergies:         mp.Allergies,
			MedicalConditions: mp.MedicalConditions,
			FamilyHistory:     mp.FamilyHistory,
			AdditionalInfo:    mp.AdditionalInfo,
		}
		if ins := mp.InsuranceRecord; ins != nil {
			response.MedicalProfile.Insurance = &dto.InsuranceRecordResponse{
				ID:           ins.ID,
				PolicyNumber: ins.PolicyNumber,
				Company:      ins.Company,
			}
		}
	}

	if dp := person.DoctorProfile; dp != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			ID:                dp.ID,
			Specialty:         dp.Specialty,
			YearsOfExperience: dp.YearsOfExperience,
			Fee:               dp.Fee,
			Degree:            dp.Degree,
			VisitDays:         dp.VisitDays,
			TwoShift:          dp.TwoShift,
			FirstShiftStart:   dp.FirstShiftStart,
			FirstShiftEnd:     dp.FirstShiftEnd,
			SecondShiftStart:  dp.SecondShiftStart,
			SecondShiftEnd:    dp.SecondShiftEnd,
		}
	}

	if ec := person.EmergencyContact; ec != nil {
		response.EmergencyContact = &dto.EmergencyContactResponse{
			ID:           ec.ID,
			FirstName:    ec.FirstName,
			LastName:     ec.LastName,
			PhoneNumber:  ec.PhoneNumber,
			Relationship: ec.Relationship,
		}
	}

	response.Facility = FacilityToResponse(person.Facility)

	return response
}

// PersonToSummary converts a Person entity to the short PersonSummaryResponse
func PersonToSummary(person *entity.Person) *dto.PersonSummaryResponse {
	if person == nil || person.ID == uuid.Nil {
		return nil
	}

	return &dto.PersonSummaryResponse{
		ID:       person.ID,
		Email:    person.Email,
		FullName: person.FullName(),
		Roles:    person.Roles.Strings(),
	}
}

// PersonsToSummaries converts a slice of Person entities to slice of PersonSummaryResponse DTOs
func PersonsToSummaries(persons []entity.Person) []dto.PersonSummaryResponse {
	responses := make([]dto.PersonSummaryResponse, 0, len(persons))
	for i := range persons {
		if resp := PersonToSummary(&persons[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}
