package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFacilityRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Address    string `json:"address" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=200"`
	Region     string `json:"region" validate:"required,max=50"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
}

// Response DTOs

type FacilityResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Region     string    `json:"region"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	Total      int                `json:"total"`
}
