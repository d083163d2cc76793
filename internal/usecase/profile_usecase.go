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
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingRequiredFields = errors.New("all fields are required")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrMissingInsuranceInfo  = errors.New("insurance information is required")
	ErrEmailAlreadyExists    = errors.New("a user with that email already exists")
	ErrRoleNotAssignable     = errors.New("role cannot be assigned")
	ErrProfileNotEditable    = errors.New("not allowed to edit this person")
)

type ProfileUsecase interface {
	// ApplyProfileSubmission creates a person when targetID is nil, or
	// reconciles the submission into targetID's records otherwise. actorID
	// is nil for anonymous signup.
	ApplyProfileSubmission(ctx context.Context, actorID *uuid.UUID, targetID *uuid.UUID, req *dto.ProfileSubmissionRequest) (*dto.PersonResponse, error)
	GetPerson(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.PersonResponse, error)
	ListPatients(ctx context.Context, actorID uuid.UUID, activeOnly bool) (*dto.PersonListResponse, error)
	ListPeople(ctx context.Context, role entity.Role, facilityID *uuid.UUID) (*dto.PersonListResponse, error)
	ProfileOptions() *dto.ProfileOptionsResponse
}

type profileUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	validator            *validator.CustomValidator
	personRepo           repository.PersonRepository
	medicalProfileRepo   repository.MedicalProfileRepository
	insuranceRecordRepo  repository.InsuranceRecordRepository
	doctorProfileRepo    repository.DoctorProfileRepository
	emergencyContactRepo repository.EmergencyContactRepository
	facilityRepo         repository.FacilityRepository
	auditService         service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	personRepo repository.PersonRepository,
	medicalProfileRepo repository.MedicalProfileRepository,
	insuranceRecordRepo repository.InsuranceRecordRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	emergencyContactRepo repository.EmergencyContactRepository,
	facilityRepo repository.FacilityRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:                   db,
		log:                  log,
		validator:            validator,
		personRepo:           personRepo,
		medicalProfileRepo:   medicalProfileRepo,
		insuranceRecordRepo:  insuranceRecordRepo,
		doctorProfileRepo:    doctorProfileRepo,
		emergencyContactRepo: emergencyContactRepo,
		facilityRepo:         facilityRepo,
		auditService:         auditService,
	}
}

// profileSubmission is a request after normalisation.
type profileSubmission struct {
	req         *dto.ProfileSubmissionRequest
	role        entity.Role
	roleGiven   bool
	email       string
	phone       string
	dateOfBirth time.Time
	sex         string
}

func (u *profileUsecase) ApplyProfileSubmission(ctx context.Context, actorID *uuid.UUID, targetID *uuid.UUID, req *dto.ProfileSubmissionRequest) (*dto.PersonResponse, error) {
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, ErrRoleNotAssignable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var actor *entity.Person
	if actorID != nil {
		found, err := u.personRepo.FindByID(ctx, tx, *actorID)
		if err != nil {
			u.log.Warnf("Failed to find requesting person: %+v", err)
			return nil, err
		}
		if found == nil {
			return nil, ErrPersonNotFound
		}
		actor = found
	}

	var target *entity.Person
	if targetID != nil {
		found, err := u.personRepo.FindByID(ctx, tx, *targetID)
		if err != nil {
			u.log.Warnf("Failed to find person: %+v", err)
			return nil, err
		}
		if found == nil {
			return nil, ErrPersonNotFound
		}
		if !actor.CanEdit(found) {
			return nil, ErrProfileNotEditable
		}
		target = found
	}

	if role == entity.RoleAdmin && !actor.IsAdmin() {
		return nil, ErrRoleNotAssignable
	}

	sub, err := u.validateSubmission(ctx, tx, target, role, req)
	if err != nil {
		return nil, err
	}

	if req.FacilityID != nil {
		facility, err := u.facilityRepo.FindByID(ctx, tx, *req.FacilityID)
		if err != nil {
			u.log.Warnf("Failed to find facility: %+v", err)
			return nil, err
		}
		if facility == nil {
			return nil, ErrFacilityNotFound
		}
	}

	var (
		person *entity.Person
		events []service.AuditEvent
	)
	if target == nil {
		person, events, err = u.createPerson(ctx, tx, sub)
	} else {
		person, events, err = u.updatePerson(ctx, tx, actor, target, sub)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	auditActor := &person.ID
	if actor != nil {
		auditActor = &actor.ID
	}
	u.auditService.Record(ctx, u.db, auditActor, events...)

	saved, err := u.personRepo.FindByID(ctx, u.db, person.ID)
	if err != nil {
		u.log.Warnf("Failed to reload person: %+v", err)
		return nil, err
	}
	return converter.PersonToResponse(saved), nil
}

// validateSubmission runs the checks in a fixed order and stops at the
// first failure. Nothing is written before it returns.
func (u *profileUsecase) validateSubmission(ctx context.Context, db *gorm.DB, target *entity.Person, role entity.Role, req *dto.ProfileSubmissionRequest) (*profileSubmission, error) {
	sub := &profileSubmission{
		req:       req,
		role:      role,
		roleGiven: strings.TrimSpace(req.Role) != "",
		email:     strings.ToLower(strings.TrimSpace(req.Email)),
		phone:     sanitizePhone(req.PhoneNumber),
	}
	if target != nil && !sub.roleGiven && target.IsDoctor() {
		sub.role = entity.RoleDoctor
	}

	dob, dobOK := birthDate(req.BirthYear, req.BirthMonth, req.BirthDay)
	sub.dateOfBirth = dob

	if strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		sub.email == "" ||
		sub.phone == "" ||
		!dobOK ||
		(target == nil && req.Password == "") {
		return nil, ErrMissingRequiredFields
	}

	if !u.validator.IsEmail(sub.email) {
		return nil, ErrInvalidEmail
	}

	if target != nil && target.IsPatient() && !target.IsAdmin() &&
		(strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.PolicyNumber) == "") {
		return nil, ErrMissingInsuranceInfo
	}

	if target == nil {
		exists, err := u.personRepo.ExistsByEmail(ctx, db, sub.email)
		if err != nil {
			u.log.Warnf("Failed to check email: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
	}

	sub.sex = req.Sex
	if !entity.IsSexChoice(req.Sex) {
		sub.sex = req.OtherSex
	}

	return sub, nil
}

// createPerson always creates the insurance record and both sub-profiles,
// whatever role was selected.
func (u *profileUsecase) createPerson(ctx context.Context, tx *gorm.DB, sub *profileSubmission) (*entity.Person, []service.AuditEvent, error) {
	req := sub.req

	insurance := &entity.InsuranceRecord{
		PolicyNumber: req.PolicyNumber,
		Company:      req.Company,
	}
	if err := u.insuranceRecordRepo.Create(ctx, tx, insurance); err != nil {
		u.log.Warnf("Failed to create insurance record: %+v", err)
		return nil, nil, err
	}

	medical := &entity.MedicalProfile{InsuranceRecordID: &insurance.ID}
	applyMedicalFields(medical, sub)
	if err := u.medicalProfileRepo.Create(ctx, tx, medical); err != nil {
		u.log.Warnf("Failed to create medical profile: %+v", err)
		return nil, nil, err
	}

	doctor := &entity.DoctorProfile{}
	applyDoctorFields(doctor, req)
	if err := u.doctorProfileRepo.Create(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, nil, err
	}

	person := &entity.Person{
		Email:            sub.email,
		Password:         string(hashedPassword),
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		PhoneNumber:      sub.phone,
		DateOfBirth:      sub.dateOfBirth,
		Roles:            entity.NewRoleSet(sub.role),
		IsActive:         true,
		MedicalProfileID: &medical.ID,
		DoctorProfileID:  &doctor.ID,
		FacilityID:       req.FacilityID,
	}

	var contact *entity.EmergencyContact
	if !req.EmergencyContact.IsEmpty() {
		contact = &entity.EmergencyContact{}
		applyEmergencyContactFields(contact, req.EmergencyContact)
		if err := u.emergencyContactRepo.Create(ctx, tx, contact); err != nil {
			u.log.Warnf("Failed to create emergency contact: %+v", err)
			return nil, nil, err
		}
		person.EmergencyContactID = &contact.ID
	}

	if err := u.personRepo.Create(ctx, tx, person); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create person: %+v", err)
		return nil, nil, err
	}

	events := []service.AuditEvent{
		service.CreatedEvent(entity.AuditActionPersonCreate, "person", person.ID, personAuditValue(person)),
		service.CreatedEvent(entity.AuditActionMedicalProfileCreate, "medical_profile", medical.ID, nil),
		service.CreatedEvent(entity.AuditActionDoctorProfileCreate, "doctor_profile", doctor.ID, nil),
		service.CreatedEvent(entity.AuditActionInsuranceCreate, "insurance_record", insurance.ID, nil),
	}
	if contact != nil {
		events = append(events, service.CreatedEvent(entity.AuditActionEmergencyContactCreate, "emergency_contact", contact.ID, nil))
	}

	return person, events, nil
}

// updatePerson overwrites target's fields and upserts the sub-profiles that
// match the submitted role. Existing child records are updated in place.
func (u *profileUsecase) updatePerson(ctx context.Context, tx *gorm.DB, actor, target *entity.Person, sub *profileSubmission) (*entity.Person, []service.AuditEvent, error) {
	req := sub.req
	var events []service.AuditEvent

	isPatient := sub.role == entity.RolePatient
	isDoctor := sub.role == entity.RoleDoctor

	var personChanged []string
	setField(&personChanged, "email", &target.Email, sub.email)
	setField(&personChanged, "phone_number", &target.PhoneNumber, sub.phone)
	setField(&personChanged, "first_name", &target.FirstName, strings.TrimSpace(req.FirstName))
	setField(&personChanged, "last_name", &target.LastName, strings.TrimSpace(req.LastName))
	if !target.DateOfBirth.Equal(sub.dateOfBirth) {
		target.DateOfBirth = sub.dateOfBirth
		personChanged = append(personChanged, "date_of_birth")
	}
	if req.FacilityID != nil && (target.FacilityID == nil || *target.FacilityID != *req.FacilityID) {
		target.FacilityID = req.FacilityID
		target.Facility = nil
		personChanged = append(personChanged, "facility")
	}
	if actor.IsAdmin() && sub.roleGiven && !target.HasRole(sub.role) {
		target.Roles = target.Roles.Add(sub.role)
		personChanged = append(personChanged, "roles")
	}

	// Medical profile and insurance
	if isPatient && target.MedicalProfile != nil {
		medical := target.MedicalProfile
		changed := applyMedicalFields(medical, sub)

		if medical.InsuranceRecord != nil {
			insurance := medical.InsuranceRecord
			var insChanged []string
			setField(&insChanged, "policy_number", &insurance.PolicyNumber, req.PolicyNumber)
			setField(&insChanged, "company", &insurance.Company, req.Company)
			if len(insChanged) > 0 {
				if err := u.insuranceRecordRepo.Update(ctx, tx, insurance); err != nil {
					u.log.Warnf("Failed to update insurance record: %+v", err)
					return nil, nil, err
				}
				events = append(events, service.ChangedEvent(entity.AuditActionInsuranceChange, "insurance_record", insurance.ID, insChanged, nil))
			}
		} else {
			insurance := &entity.InsuranceRecord{PolicyNumber: req.PolicyNumber, Company: req.Company}
			if err := u.insuranceRecordRepo.Create(ctx, tx, insurance); err != nil {
				u.log.Warnf("Failed to create insurance record: %+v", err)
				return nil, nil, err
			}
			medical.InsuranceRecordID = &insurance.ID
			medical.InsuranceRecord = insurance
			changed = append(changed, "insurance")
			events = append(events, service.CreatedEvent(entity.AuditActionInsuranceCreate, "insurance_record", insurance.ID, nil))
		}

		if len(changed) > 0 {
			if err := u.medicalProfileRepo.Update(ctx, tx, medical); err != nil {
				u.log.Warnf("Failed to update medical profile: %+v", err)
				return nil, nil, err
			}
			events = append(events, service.ChangedEvent(entity.AuditActionMedicalProfileChange, "medical_profile", medical.ID, changed, nil))
		}
	}

	if (isPatient || target.IsPatient()) && target.MedicalProfile == nil {
		insurance := &entity.InsuranceRecord{PolicyNumber: req.PolicyNumber, Company: req.Company}
		if err := u.insuranceRecordRepo.Create(ctx, tx, insurance); err != nil {
			u.log.Warnf("Failed to create insurance record: %+v", err)
			return nil, nil, err
		}
		medical := &entity.MedicalProfile{InsuranceRecordID: &insurance.ID}
		applyMedicalFields(medical, sub)
		if err := u.medicalProfileRepo.Create(ctx, tx, medical); err != nil {
			u.log.Warnf("Failed to create medical profile: %+v", err)
			return nil, nil, err
		}
		target.MedicalProfileID = &medical.ID
		target.MedicalProfile = medical
		personChanged = append(personChanged, "medical_profile")
		events = append(events,
			service.CreatedEvent(entity.AuditActionInsuranceCreate, "insurance_record", insurance.ID, nil),
			service.CreatedEvent(entity.AuditActionMedicalProfileCreate, "medical_profile", medical.ID, nil),
		)
	}

	// Doctor profile
	if isDoctor {
		if target.DoctorProfile != nil {
			doctor := target.DoctorProfile
			if changed := applyDoctorFields(doctor, req); len(changed) > 0 {
				if err := u.doctorProfileRepo.Update(ctx, tx, doctor); err != nil {
					u.log.Warnf("Failed to update doctor profile: %+v", err)
					return nil, nil, err
				}
				events = append(events, service.ChangedEvent(entity.AuditActionDoctorProfileChange, "doctor_profile", doctor.ID, changed, nil))
			}
		} else {
			doctor := &entity.DoctorProfile{}
			applyDoctorFields(doctor, req)
			if err := u.doctorProfileRepo.Create(ctx, tx, doctor); err != nil {
				u.log.Warnf("Failed to create doctor profile: %+v", err)
				return nil, nil, err
			}
			target.DoctorProfileID = &doctor.ID
			target.DoctorProfile = doctor
			personChanged = append(personChanged, "doctor_profile")
			events = append(events, service.CreatedEvent(entity.AuditActionDoctorProfileCreate, "doctor_profile", doctor.ID, nil))
		}
	}

	// Emergency contact
	if !req.EmergencyContact.IsEmpty() {
		if target.EmergencyContact != nil {
			contact := target.EmergencyContact
			if changed := applyEmergencyContactFields(contact, req.EmergencyContact); len(changed) > 0 {
				if err := u.emergencyContactRepo.Update(ctx, tx, contact); err != nil {
					u.log.Warnf("Failed to update emergency contact: %+v", err)
					return nil, nil, err
				}
				events = append(events, service.ChangedEvent(entity.AuditActionEmergencyContactChange, "emergency_contact", contact.ID, changed, nil))
			}
		} else {
			contact := &entity.EmergencyContact{}
			applyEmergencyContactFields(contact, req.EmergencyContact)
			if err := u.emergencyContactRepo.Create(ctx, tx, contact); err != nil {
				u.log.Warnf("Failed to create emergency contact: %+v", err)
				return nil, nil, err
			}
			target.EmergencyContactID = &contact.ID
			target.EmergencyContact = contact
			personChanged = append(personChanged, "emergency_contact")
			events = append(events, service.CreatedEvent(entity.AuditActionEmergencyContactCreate, "emergency_contact", contact.ID, nil))
		}
	}

	if len(personChanged) > 0 {
		if err := u.personRepo.Update(ctx, tx, target); err != nil {
			if isDuplicateKeyError(err, "email") {
				return nil, nil, ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to update person: %+v", err)
			return nil, nil, err
		}
		events = append(events, service.ChangedEvent(entity.AuditActionPersonChange, "person", target.ID, personChanged, personAuditValue(target)))
	}

	return target, events, nil
}

func (u *profileUsecase) GetPerson(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.PersonResponse, error) {
	actor, err := u.personRepo.FindByID(ctx, u.db, actorID)
	if err != nil {
		u.log.Warnf("Failed to find requesting person: %+v", err)
		return nil, err
	}
	if actor == nil {
		return nil, ErrPersonNotFound
	}

	person := actor
	if id != actorID {
		person, err = u.personRepo.FindByID(ctx, u.db, id)
		if err != nil {
			u.log.Warnf("Failed to find person: %+v", err)
			return nil, err
		}
		if person == nil {
			return nil, ErrPersonNotFound
		}
	}
	if !actor.CanEdit(person) {
		return nil, ErrProfileNotEditable
	}

	return converter.PersonToResponse(person), nil
}

// ListPatients returns every patient to admins and doctors. Anyone else
// only sees themself.
func (u *profileUsecase) ListPatients(ctx context.Context, actorID uuid.UUID, activeOnly bool) (*dto.PersonListResponse, error) {
	actor, err := u.personRepo.FindByID(ctx, u.db, actorID)
	if err != nil {
		u.log.Warnf("Failed to find requesting person: %+v", err)
		return nil, err
	}
	if actor == nil {
		return nil, ErrPersonNotFound
	}

	var patients []entity.Person
	if actor.IsAdmin() || actor.IsDoctor() {
		patients, err = u.personRepo.FindByRole(ctx, u.db, entity.RolePatient, &entity.PersonFilter{ActiveOnly: activeOnly})
		if err != nil {
			u.log.Warnf("Failed to find patients: %+v", err)
			return nil, err
		}
	} else if actor.IsPatient() && (!activeOnly || actor.IsActive) {
		patients = []entity.Person{*actor}
	}

	return &dto.PersonListResponse{
		People: converter.PersonsToSummaries(patients),
		Total:  len(patients),
	}, nil
}

func (u *profileUsecase) ListPeople(ctx context.Context, role entity.Role, facilityID *uuid.UUID) (*dto.PersonListResponse, error) {
	people, err := u.personRepo.FindByRole(ctx, u.db, role, &entity.PersonFilter{FacilityID: facilityID})
	if err != nil {
		u.log.Warnf("Failed to find people by role: %+v", err)
		return nil, err
	}

	return &dto.PersonListResponse{
		People: converter.PersonsToSummaries(people),
		Total:  len(people),
	}, nil
}

func (u *profileUsecase) ProfileOptions() *dto.ProfileOptionsResponse {
	years := make([]int, 0, 99)
	for y := 1; y < 100; y++ {
		years = append(years, y)
	}

	return &dto.ProfileOptionsResponse{
		Roles:       []string{string(entity.RolePatient), string(entity.RoleDoctor)},
		Sexes:       entity.SexChoices,
		Specialties: entity.Specialties,
		VisitDays:   entity.VisitDays,
		TwoShift:    entity.TwoShiftAnswers,
		ShiftTimes:  entity.ShiftTimes,
		Years:       years,
	}
}

// applyMedicalFields copies the medical fields of sub onto m and returns the
// names of the fields that changed.
func applyMedicalFields(m *entity.MedicalProfile, sub *profileSubmission) []string {
	req := sub.req
	var changed []string
	setField(&changed, "sex", &m.Sex, sub.sex)
	setField(&changed, "medications", &m.Medications, req.Medications)
	setField(&changed, "allergies", &m.Allergies, req.Allergies)
	setField(&changed, "medical_conditions", &m.MedicalConditions, req.MedicalConditions)
	setField(&changed, "family_history", &m.FamilyHistory, req.FamilyHistory)
	setField(&changed, "additional_info", &m.AdditionalInfo, req.AdditionalInfo)
	return changed
}

// applyDoctorFields copies the doctor fields of req onto d. The second
// shift is blanked unless two_shift is "Yes".
func applyDoctorFields(d *entity.DoctorProfile, req *dto.ProfileSubmissionRequest) []string {
	secondStart, secondEnd := "", ""
	if req.TwoShift == entity.TwoShiftYes {
		secondStart, secondEnd = req.SecondShiftStart, req.SecondShiftEnd
	}

	var changed []string
	setField(&changed, "specialty", &d.Specialty, req.Specialty)
	setField(&changed, "years_of_experience", &d.YearsOfExperience, req.YearsOfExperience)
	if !d.Fee.Equal(req.Fee) {
		d.Fee = req.Fee
		changed = append(changed, "fee")
	}
	setField(&changed, "degree", &d.Degree, req.Degree)
	setField(&changed, "visit_days", &d.VisitDays, req.VisitDays)
	setField(&changed, "two_shift", &d.TwoShift, req.TwoShift)
	setField(&changed, "first_shift_start", &d.FirstShiftStart, req.FirstShiftStart)
	setField(&changed, "first_shift_end", &d.FirstShiftEnd, req.FirstShiftEnd)
	setField(&changed, "second_shift_start", &d.SecondShiftStart, secondStart)
	setField(&changed, "second_shift_end", &d.SecondShiftEnd, secondEnd)
	return changed
}

func applyEmergencyContactFields(c *entity.EmergencyContact, req *dto.EmergencyContactRequest) []string {
	var changed []string
	setField(&changed, "first_name", &c.FirstName, strings.TrimSpace(req.FirstName))
	setField(&changed, "last_name", &c.LastName, strings.TrimSpace(req.LastName))
	setField(&changed, "phone_number", &c.PhoneNumber, sanitizePhone(req.PhoneNumber))
	setField(&changed, "relationship", &c.Relationship, strings.TrimSpace(req.Relationship))
	return changed
}

// setField assigns v to *dst and records name when the value differs.
func setField[T comparable](changed *[]string, name string, dst *T, v T) {
	if *dst != v {
		*dst = v
		*changed = append(*changed, name)
	}
}

// sanitizePhone keeps digits and a single leading '+'.
func sanitizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "+" {
		return ""
	}
	return s
}

// birthDate builds a calendar date and rejects out-of-range components
// such as February 30th instead of normalising them.
func birthDate(year, month, day int) (time.Time, bool) {
	if year <= 0 || month <= 0 || day <= 0 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func personAuditValue(p *entity.Person) map[string]interface{} {
	return map[string]interface{}{
		"email": p.Email,
		"name":  p.FullName(),
		"roles": p.Roles.Strings(),
	}
}
