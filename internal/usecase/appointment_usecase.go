package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

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
	ErrInvalidDateTime     = errors.New("invalid date or time")
	ErrInvalidDuration     = service.ErrInvalidDuration
	ErrPersonNotFound      = service.ErrPersonNotFound
	ErrDoctorUnavailable   = errors.New("the doctor is not free at that time, please specify a different time")
	ErrPatientUnavailable  = errors.New("the patient is not free at that time, please specify a different time")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to the requesting person")
	ErrParticipantRole     = errors.New("an appointment needs one doctor and one different patient")
)

// naiveDateTimeLayouts are accepted for start times that carry no offset.
// They are read in the clinic's configured timezone.
var naiveDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type AppointmentUsecase interface {
	// SubmitAppointment creates an appointment, or edits existingID in place
	// when it is set. actorID is the requesting person.
	SubmitAppointment(ctx context.Context, actorID uuid.UUID, req *dto.SubmitAppointmentRequest, existingID *uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	GetAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetSchedule(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.ScheduleResponse, error)
	GetUpcoming(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	location        *time.Location
	personRepo      repository.PersonRepository
	appointmentRepo repository.AppointmentRepository
	availability    service.AvailabilityService
	lockService     *service.ScheduleLockService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	personRepo repository.PersonRepository,
	appointmentRepo repository.AppointmentRepository,
	availability service.AvailabilityService,
	lockService *service.ScheduleLockService,
	auditService service.AuditService,
) AppointmentUsecase {
	if location == nil {
		location = time.UTC
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		location:        location,
		personRepo:      personRepo,
		appointmentRepo: appointmentRepo,
		availability:    availability,
		lockService:     lockService,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) SubmitAppointment(ctx context.Context, actorID uuid.UUID, req *dto.SubmitAppointmentRequest, existingID *uuid.UUID) (*dto.AppointmentResponse, error) {
	start, err := u.parseStart(req.Date)
	if err != nil {
		return nil, err
	}
	if !entity.ValidDuration(req.DurationMinutes) {
		return nil, ErrInvalidDuration
	}

	doctorID := actorID
	if req.DoctorID != nil && *req.DoctorID != uuid.Nil {
		doctorID = *req.DoctorID
	}
	patientID := actorID
	if req.PatientID != nil && *req.PatientID != uuid.Nil {
		patientID = *req.PatientID
	}

	// Free-check and write must not interleave with another booking for
	// either participant.
	release, err := u.lockService.Acquire(ctx, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to acquire schedule lock: %+v", err)
		return nil, err
	}
	defer release()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	actor, err := u.personRepo.FindByID(ctx, tx, actorID)
	if err != nil {
		u.log.Warnf("Failed to find requesting person: %+v", err)
		return nil, err
	}
	if actor == nil {
		return nil, ErrPersonNotFound
	}

	participants, err := u.personRepo.FindByIDsForUpdate(ctx, tx, []uuid.UUID{doctorID, patientID})
	if err != nil {
		u.log.Warnf("Failed to lock participants: %+v", err)
		return nil, err
	}
	doctor := findPerson(participants, doctorID)
	patient := findPerson(participants, patientID)
	if doctor == nil || patient == nil {
		return nil, ErrPersonNotFound
	}
	if doctor.ID == patient.ID || !doctor.IsDoctor() || !patient.IsPatient() {
		return nil, ErrParticipantRole
	}
	// The doctor may book for themself, and anyone who may edit the
	// patient's records (self, admin, any doctor) may book for them.
	if actor.ID != doctor.ID && !actor.CanEdit(patient) {
		return nil, ErrAppointmentNotOwned
	}

	var appointment *entity.Appointment
	var changed []string
	if existingID != nil {
		appointment, err = u.appointmentRepo.FindByID(ctx, tx, *existingID)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if !actor.IsAdmin() && !appointment.HasParticipant(actor.ID) {
			return nil, ErrAppointmentNotOwned
		}
		changed = appointment.ChangedFields(start, req.DurationMinutes, doctorID, patientID)
	}

	// Doctor first; the first failure is the one reported.
	free, err := u.availability.IsFree(ctx, tx, doctorID, start, req.DurationMinutes, existingID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrDoctorUnavailable
	}

	free, err = u.availability.IsFree(ctx, tx, patientID, start, req.DurationMinutes, existingID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrPatientUnavailable
	}

	var event service.AuditEvent
	if appointment != nil {
		appointment.DoctorID = doctorID
		appointment.PatientID = patientID
		appointment.StartAt = start
		appointment.DurationMinutes = req.DurationMinutes
		if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
			u.log.Warnf("Failed to update appointment: %+v", err)
			return nil, err
		}
		event = service.ChangedEvent(entity.AuditActionAppointmentChange, "appointment", appointment.ID, changed, appointmentAuditValue(appointment))
	} else {
		appointment = &entity.Appointment{
			DoctorID:        doctorID,
			PatientID:       patientID,
			StartAt:         start,
			DurationMinutes: req.DurationMinutes,
		}
		if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return nil, err
		}
		event = service.CreatedEvent(entity.AuditActionAppointmentCreate, "appointment", appointment.ID, appointmentAuditValue(appointment))
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, u.db, &actor.ID, event)

	appointment.Doctor = *doctor
	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	actor, err := u.findActor(ctx, u.db, actorID)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !actor.IsAdmin() && !appointment.HasParticipant(actor.ID) {
		return ErrAppointmentNotOwned
	}

	release, err := u.lockService.Acquire(ctx, appointment.DoctorID, appointment.PatientID)
	if err != nil {
		u.log.Warnf("Failed to acquire schedule lock: %+v", err)
		return err
	}
	defer release()

	rows, err := u.appointmentRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.Record(ctx, u.db, &actor.ID,
		service.DeletedEvent(entity.AuditActionAppointmentCancel, "appointment", appointment.ID, appointmentAuditValue(appointment)))

	return nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actor, err := u.findActor(ctx, u.db, actorID)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !actor.IsAdmin() && !appointment.HasParticipant(actor.ID) {
		return nil, ErrAppointmentNotOwned
	}

	return converter.AppointmentToResponse(appointment), nil
}

// GetSchedule splits the actor's schedule at now: upcoming appointments in
// ascending order, past ones most recent first.
func (u *appointmentUsecase) GetSchedule(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.ScheduleResponse, error) {
	actor, err := u.findActor(ctx, u.db, actorID)
	if err != nil {
		return nil, err
	}

	futureFilter := scheduleFilterFor(actor)
	futureFilter.From = &now
	future, err := u.appointmentRepo.FindSchedule(ctx, u.db, futureFilter)
	if err != nil {
		u.log.Warnf("Failed to find future schedule: %+v", err)
		return nil, err
	}

	pastFilter := scheduleFilterFor(actor)
	pastFilter.To = &now
	pastFilter.Desc = true
	past, err := u.appointmentRepo.FindSchedule(ctx, u.db, pastFilter)
	if err != nil {
		u.log.Warnf("Failed to find past schedule: %+v", err)
		return nil, err
	}

	return &dto.ScheduleResponse{
		Future: converter.AppointmentsToResponses(future),
		Past:   converter.AppointmentsToResponses(past),
	}, nil
}

// GetUpcoming returns the actor's appointments from the start of the
// current week (Monday, clinic timezone) through the following seven days.
func (u *appointmentUsecase) GetUpcoming(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.AppointmentListResponse, error) {
	actor, err := u.findActor(ctx, u.db, actorID)
	if err != nil {
		return nil, err
	}

	from := startOfWeek(now.In(u.location))
	to := from.AddDate(0, 0, 7)

	filter := scheduleFilterFor(actor)
	filter.From = &from
	filter.To = &to
	appointments, err := u.appointmentRepo.FindSchedule(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) findActor(ctx context.Context, db *gorm.DB, actorID uuid.UUID) (*entity.Person, error) {
	actor, err := u.personRepo.FindByID(ctx, db, actorID)
	if err != nil {
		u.log.Warnf("Failed to find requesting person: %+v", err)
		return nil, err
	}
	if actor == nil {
		return nil, ErrPersonNotFound
	}
	return actor, nil
}

// parseStart accepts an RFC 3339 timestamp or one of naiveDateTimeLayouts.
// The result is always in UTC.
func (u *appointmentUsecase) parseStart(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, u.location); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// scheduleFilterFor scopes a schedule by role: admins see everything,
// doctors the appointments they hold, everyone else their own bookings.
func scheduleFilterFor(actor *entity.Person) *entity.ScheduleFilter {
	filter := &entity.ScheduleFilter{}
	switch {
	case actor.IsAdmin():
	case actor.IsDoctor():
		filter.DoctorID = &actor.ID
	default:
		filter.PatientID = &actor.ID
	}
	return filter
}

func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func findPerson(persons []entity.Person, id uuid.UUID) *entity.Person {
	for i := range persons {
		if persons[i].ID == id {
			return &persons[i]
		}
	}
	return nil
}

func appointmentAuditValue(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":  a.DoctorID.String(),
		"patient_id": a.PatientID.String(),
		"start_at":   a.StartAt.Format(time.RFC3339),
		"duration":   a.DurationMinutes,
	}
}
