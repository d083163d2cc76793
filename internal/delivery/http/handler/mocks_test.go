package handler

import (
	"context"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ usecase.AppointmentUsecase = (*mockAppointmentUsecase)(nil)
	_ usecase.ProfileUsecase     = (*mockProfileUsecase)(nil)
	_ usecase.AuditLogUsecase    = (*mockAuditLogUsecase)(nil)
)

type mockAuditLogUsecase struct {
	mock.Mock
}

func (m *mockAuditLogUsecase) SearchAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*dto.AuditLogListResponse)
	return resp, args.Error(1)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.AuditLogResponse)
	return resp, args.Error(1)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) SubmitAppointment(ctx context.Context, actorID uuid.UUID, req *dto.SubmitAppointmentRequest, existingID *uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, actorID, req, existingID)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) CancelAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) GetSchedule(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.ScheduleResponse, error) {
	args := m.Called(ctx, actorID, now)
	resp, _ := args.Get(0).(*dto.ScheduleResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) GetUpcoming(ctx context.Context, actorID uuid.UUID, now time.Time) (*dto.AppointmentListResponse, error) {
	args := m.Called(ctx, actorID, now)
	resp, _ := args.Get(0).(*dto.AppointmentListResponse)
	return resp, args.Error(1)
}

type mockProfileUsecase struct {
	mock.Mock
}

func (m *mockProfileUsecase) ApplyProfileSubmission(ctx context.Context, actorID *uuid.UUID, targetID *uuid.UUID, req *dto.ProfileSubmissionRequest) (*dto.PersonResponse, error) {
	args := m.Called(ctx, actorID, targetID, req)
	resp, _ := args.Get(0).(*dto.PersonResponse)
	return resp, args.Error(1)
}

func (m *mockProfileUsecase) GetPerson(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.PersonResponse, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*dto.PersonResponse)
	return resp, args.Error(1)
}

func (m *mockProfileUsecase) ListPatients(ctx context.Context, actorID uuid.UUID, activeOnly bool) (*dto.PersonListResponse, error) {
	args := m.Called(ctx, actorID, activeOnly)
	resp, _ := args.Get(0).(*dto.PersonListResponse)
	return resp, args.Error(1)
}

func (m *mockProfileUsecase) ListPeople(ctx context.Context, role entity.Role, facilityID *uuid.UUID) (*dto.PersonListResponse, error) {
	args := m.Called(ctx, role, facilityID)
	resp, _ := args.Get(0).(*dto.PersonListResponse)
	return resp, args.Error(1)
}

func (m *mockProfileUsecase) ProfileOptions() *dto.ProfileOptionsResponse {
	resp, _ := m.Called().Get(0).(*dto.ProfileOptionsResponse)
	return resp
}
