package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name      string
		policy    BoundaryPolicy
		s1, e1    time.Time
		s2, e2    time.Time
		conflicts bool
	}{
		{"disjoint", BoundaryInclusive, at(9, 0), at(9, 30), at(10, 0), at(10, 30), false},
		{"contained", BoundaryInclusive, at(9, 0), at(11, 0), at(10, 0), at(10, 30), true},
		{"partial", BoundaryInclusive, at(9, 45), at(10, 15), at(10, 0), at(10, 30), true},
		{"touching inclusive", BoundaryInclusive, at(10, 30), at(11, 0), at(10, 0), at(10, 30), true},
		{"touching exclusive", BoundaryExclusive, at(10, 30), at(11, 0), at(10, 0), at(10, 30), false},
		{"partial exclusive", BoundaryExclusive, at(9, 45), at(10, 15), at(10, 0), at(10, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflicts, IntervalsOverlap(tt.policy, tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.conflicts, IntervalsOverlap(tt.policy, tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}

func TestAppointmentConflicts(t *testing.T) {
	existing := &Appointment{StartAt: at(10, 0), DurationMinutes: 30}

	assert.Equal(t, at(10, 30), existing.End())
	assert.True(t, existing.Conflicts(BoundaryInclusive, at(10, 15), 30))
	assert.True(t, existing.Conflicts(BoundaryInclusive, at(10, 30), 30))
	assert.False(t, existing.Conflicts(BoundaryInclusive, at(10, 31), 30))
	assert.False(t, existing.Conflicts(BoundaryExclusive, at(10, 30), 30))
	assert.True(t, existing.Conflicts(BoundaryInclusive, at(9, 30), 30))
}

func TestParseBoundaryPolicy(t *testing.T) {
	assert.Equal(t, BoundaryExclusive, ParseBoundaryPolicy("exclusive"))
	assert.Equal(t, BoundaryInclusive, ParseBoundaryPolicy("inclusive"))
	assert.Equal(t, DefaultBoundaryPolicy, ParseBoundaryPolicy(""))
	assert.Equal(t, DefaultBoundaryPolicy, ParseBoundaryPolicy("sometimes"))
}

func TestAppointmentChangedFields(t *testing.T) {
	doctor, patient := uuid.New(), uuid.New()
	a := &Appointment{DoctorID: doctor, PatientID: patient, StartAt: at(10, 0), DurationMinutes: 30}

	assert.Empty(t, a.ChangedFields(at(10, 0), 30, doctor, patient))
	assert.Equal(t, []string{"duration"}, a.ChangedFields(at(10, 0), 45, doctor, patient))
	assert.Equal(t,
		[]string{"date", "patient", "duration", "doctor"},
		a.ChangedFields(at(11, 0), 45, uuid.New(), uuid.New()))
}

func TestAppointmentHasParticipant(t *testing.T) {
	doctor, patient := uuid.New(), uuid.New()
	a := &Appointment{DoctorID: doctor, PatientID: patient}

	assert.True(t, a.HasParticipant(doctor))
	assert.True(t, a.HasParticipant(patient))
	assert.False(t, a.HasParticipant(uuid.New()))
}

func TestValidDuration(t *testing.T) {
	assert.False(t, ValidDuration(0))
	assert.False(t, ValidDuration(-30))
	assert.True(t, ValidDuration(1))
	assert.True(t, ValidDuration(MaxDurationMinutes))
	assert.False(t, ValidDuration(MaxDurationMinutes+1))
	assert.False(t, ValidDuration(200000000))
}

func TestLongestAppointmentEndsAfterStart(t *testing.T) {
	a := &Appointment{StartAt: at(10, 0), DurationMinutes: MaxDurationMinutes}
	assert.True(t, a.End().After(a.StartAt))
	assert.True(t, a.End().Equal(at(10, 0).Add(24*time.Hour)))
	assert.True(t, a.Conflicts(BoundaryInclusive, at(10, 10), 30))
}
