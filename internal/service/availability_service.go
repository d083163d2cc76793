package service

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrInvalidDuration = errors.New("duration must be between 1 minute and 24 hours")
)

// AvailabilityService decides whether a person is free for a proposed
// interval by scanning every appointment they take part in, as doctor or
// as patient.
type AvailabilityService interface {
	// IsFree reports whether personID has no appointment conflicting with
	// [start, start+durationMinutes). excludeID, when set, is ignored so an
	// appointment can be re-validated against its own replacement.
	IsFree(ctx context.Context, db *gorm.DB, personID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error)
	Policy() entity.BoundaryPolicy
}

type availabilityService struct {
	log             *logrus.Logger
	personRepo      repository.PersonRepository
	appointmentRepo repository.AppointmentRepository
	policy          entity.BoundaryPolicy
}

func NewAvailabilityService(
	log *logrus.Logger,
	personRepo repository.PersonRepository,
	appointmentRepo repository.AppointmentRepository,
	policy entity.BoundaryPolicy,
) AvailabilityService {
	if policy == "" {
		policy = entity.DefaultBoundaryPolicy
	}
	return &availabilityService{
		log:             log,
		personRepo:      personRepo,
		appointmentRepo: appointmentRepo,
		policy:          policy,
	}
}

func (s *availabilityService) Policy() entity.BoundaryPolicy {
	return s.policy
}

func (s *availabilityService) IsFree(ctx context.Context, db *gorm.DB, personID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	if !entity.ValidDuration(durationMinutes) {
		return false, ErrInvalidDuration
	}

	person, err := s.personRepo.FindByID(ctx, db, personID)
	if err != nil {
		s.log.Warnf("Failed to find person %s: %+v", personID, err)
		return false, err
	}
	if person == nil {
		return false, ErrPersonNotFound
	}

	appointments, err := s.appointmentRepo.FindByParticipant(ctx, db, personID)
	if err != nil {
		s.log.Warnf("Failed to load appointments for %s: %+v", personID, err)
		return false, err
	}

	for i := range appointments {
		existing := &appointments[i]
		if excludeID != nil && existing.ID == *excludeID {
			continue
		}
		if existing.Conflicts(s.policy, start, durationMinutes) {
			s.log.Debugf("Person %s busy: proposed %s+%dm conflicts with appointment %s", personID, start.Format(time.RFC3339), durationMinutes, existing.ID)
			return false, nil
		}
	}

	return true, nil
}
