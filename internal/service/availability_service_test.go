package service

import (
	"context"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type availabilityFixture struct {
	db      *gorm.DB
	svc     AvailabilityService
	doctor  *entity.Person
	patient *entity.Person
	booked  *entity.Appointment
}

func ten(minute int) time.Time {
	return time.Date(2024, time.May, 6, 10, minute, 0, 0, time.UTC)
}

// newAvailabilityFixture books doctor with patient from 10:00 to 10:30.
func newAvailabilityFixture(t *testing.T, policy entity.BoundaryPolicy) *availabilityFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &availabilityFixture{
		db:      db,
		svc:     NewAvailabilityService(testutil.NewTestLogger(), repository.NewPersonRepository(), repository.NewAppointmentRepository(), policy),
		doctor:  testutil.NewPerson(t, db, "doc@clinic.test", entity.RoleDoctor),
		patient: testutil.NewPerson(t, db, "pat@clinic.test", entity.RolePatient),
	}
	f.booked = testutil.NewAppointment(t, db, f.doctor.ID, f.patient.ID, ten(0), 30)
	return f
}

func TestIsFreeInclusiveBoundary(t *testing.T) {
	f := newAvailabilityFixture(t, "")
	ctx := context.Background()
	assert.Equal(t, entity.BoundaryInclusive, f.svc.Policy())

	tests := []struct {
		name  string
		start time.Time
		free  bool
	}{
		{"overlapping", ten(15), false},
		{"touching end", ten(30), false},
		{"one minute after", ten(31), true},
		{"ending at start", ten(0).Add(-30 * time.Minute), false},
		{"well before", ten(0).Add(-2 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, who := range []*entity.Person{f.doctor, f.patient} {
				free, err := f.svc.IsFree(ctx, f.db, who.ID, tt.start, 30, nil)
				require.NoError(t, err)
				assert.Equal(t, tt.free, free, who.Email)
			}
		})
	}
}

func TestIsFreeExclusiveBoundary(t *testing.T) {
	f := newAvailabilityFixture(t, entity.BoundaryExclusive)

	free, err := f.svc.IsFree(context.Background(), f.db, f.doctor.ID, ten(30), 30, nil)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = f.svc.IsFree(context.Background(), f.db, f.doctor.ID, ten(29), 30, nil)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsFreeCountsEveryRole(t *testing.T) {
	f := newAvailabilityFixture(t, entity.BoundaryInclusive)

	// A doctor who is also someone's patient is busy in both capacities.
	otherDoctor := testutil.NewPerson(t, f.db, "other@clinic.test", entity.RoleDoctor)
	testutil.NewAppointment(t, f.db, otherDoctor.ID, f.doctor.ID, ten(0).Add(2*time.Hour), 60)

	free, err := f.svc.IsFree(context.Background(), f.db, f.doctor.ID, ten(0).Add(150*time.Minute), 15, nil)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsFreeExcludesEditedAppointment(t *testing.T) {
	f := newAvailabilityFixture(t, entity.BoundaryInclusive)

	free, err := f.svc.IsFree(context.Background(), f.db, f.doctor.ID, ten(10), 30, &f.booked.ID)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsFreeErrors(t *testing.T) {
	f := newAvailabilityFixture(t, entity.BoundaryInclusive)
	ctx := context.Background()

	_, err := f.svc.IsFree(ctx, f.db, uuid.New(), ten(0), 30, nil)
	assert.ErrorIs(t, err, ErrPersonNotFound)

	_, err = f.svc.IsFree(ctx, f.db, f.doctor.ID, ten(0), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.svc.IsFree(ctx, f.db, f.doctor.ID, ten(0), -15, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.svc.IsFree(ctx, f.db, f.doctor.ID, ten(0), entity.MaxDurationMinutes+1, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.svc.IsFree(ctx, f.db, f.doctor.ID, ten(0), 200000000, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIsFreeWithoutAppointments(t *testing.T) {
	f := newAvailabilityFixture(t, entity.BoundaryInclusive)
	stranger := testutil.NewPerson(t, f.db, "new@clinic.test", entity.RolePatient)

	free, err := f.svc.IsFree(context.Background(), f.db, stranger.ID, ten(0), 30, nil)
	require.NoError(t, err)
	assert.True(t, free)
}
