package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
)

type FacilityUsecase interface {
	CreateFacility(ctx context.Context, actorID uuid.UUID, req *dto.CreateFacilityRequest) (*dto.FacilityResponse, error)
	ListFacilities(ctx context.Context) (*dto.FacilityListResponse, error)
}

type facilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	facilityRepo repository.FacilityRepository
	auditService service.AuditService
}

func NewFacilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	facilityRepo repository.FacilityRepository,
	auditService service.AuditService,
) FacilityUsecase {
	return &facilityUsecase{
		db:           db,
		log:          log,
		facilityRepo: facilityRepo,
		auditService: auditService,
	}
}

func (u *facilityUsecase) CreateFacility(ctx context.Context, actorID uuid.UUID, req *dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	facility := &entity.Facility{
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		Region:     strings.TrimSpace(req.Region),
		PostalCode: strings.TrimSpace(req.PostalCode),
	}

	if err := u.facilityRepo.Create(ctx, u.db, facility); err != nil {
		u.log.Warnf("Failed to create facility: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, u.db, &actorID,
		service.CreatedEvent(entity.AuditActionFacilityCreate, "facility", facility.ID, map[string]interface{}{"name": facility.Name}))

	return converter.FacilityToResponse(facility), nil
}

func (u *facilityUsecase) ListFacilities(ctx context.Context) (*dto.FacilityListResponse, error) {
	facilities, err := u.facilityRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find facilities: %+v", err)
		return nil, err
	}

	return &dto.FacilityListResponse{
		Facilities: converter.FacilitiesToResponses(facilities),
		Total:      len(facilities),
	}, nil
}
