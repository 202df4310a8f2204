package laundry

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

func slotAt(start time.Time) *models.AvailableSlot {
	s := &models.AvailableSlot{ID: 1, WasherID: 1, Start: start}
	s.SetDuration(time.Hour)
	return s
}

func TestCheckEligibility(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
	policy := DefaultPolicy()

	testCases := []struct {
		name     string
		snapshot EligibilitySnapshot
		expected error
	}{
		{
			name:     "Slot in ten days with clean history",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 10))},
			expected: nil,
		},
		{
			name:     "Slot already booked",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 1)), AlreadyBooked: true},
			expected: ErrSlotUnavailable,
		},
		{
			name:     "Slot in twenty days",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 20))},
			expected: ErrTooFarInAdvance,
		},
		{
			name:     "Last day inside the horizon",
			snapshot: EligibilitySnapshot{Slot: slotAt(time.Date(2024, 6, 15, 23, 0, 0, 0, loc))},
			expected: nil,
		},
		{
			name:     "First day outside the horizon, early morning",
			snapshot: EligibilitySnapshot{Slot: slotAt(time.Date(2024, 6, 16, 0, 30, 0, 0, loc))},
			expected: ErrTooFarInAdvance,
		},
		{
			name:     "One absence is tolerated",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 2)), RecentAbsences: 1},
			expected: nil,
		},
		{
			name:     "Two absences block booking",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 2)), RecentAbsences: 2},
			expected: ErrTooManyAbsences,
		},
		{
			name:     "One active reservation is tolerated",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 2)), ActiveReservations: 1},
			expected: nil,
		},
		{
			name:     "Two active reservations block booking",
			snapshot: EligibilitySnapshot{Slot: slotAt(now.AddDate(0, 0, 2)), ActiveReservations: 2},
			expected: ErrTooManyActiveReservations,
		},
		{
			name: "Already booked wins over every other gate",
			snapshot: EligibilitySnapshot{
				Slot:               slotAt(now.AddDate(0, 0, 30)),
				AlreadyBooked:      true,
				RecentAbsences:     5,
				ActiveReservations: 5,
			},
			expected: ErrSlotUnavailable,
		},
		{
			name: "Horizon is checked before absences",
			snapshot: EligibilitySnapshot{
				Slot:           slotAt(now.AddDate(0, 0, 30)),
				RecentAbsences: 5,
			},
			expected: ErrTooFarInAdvance,
		},
		{
			name: "Absences are checked before the active cap",
			snapshot: EligibilitySnapshot{
				Slot:               slotAt(now.AddDate(0, 0, 1)),
				RecentAbsences:     2,
				ActiveReservations: 2,
			},
			expected: ErrTooManyAbsences,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.CheckEligibility(tc.snapshot, now, loc)
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestCheckEligibilityThresholdsAreConfigurable(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()
	policy.HorizonDays = 30
	policy.MaxAbsences = 3
	policy.MaxActive = 4

	err := policy.CheckEligibility(EligibilitySnapshot{
		Slot:               slotAt(now.AddDate(0, 0, 20)),
		RecentAbsences:     2,
		ActiveReservations: 3,
	}, now, time.UTC)

	assert.NoError(t, err)
}

func TestEligibilityErrorClasses(t *testing.T) {
	assert.True(t, errors.Is(ErrSlotUnavailable, httperr.ErrConflict))
	assert.True(t, errors.Is(ErrTooFarInAdvance, httperr.ErrPolicyViolation))
	assert.True(t, errors.Is(ErrTooManyAbsences, httperr.ErrPolicyViolation))
	assert.True(t, errors.Is(ErrTooManyActiveReservations, httperr.ErrPolicyViolation))
	assert.False(t, errors.Is(ErrTooManyAbsences, httperr.ErrConflict))
}

func TestAbsenceWindowAt(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	from, to := DefaultPolicy().AbsenceWindowAt(now)

	assert.Equal(t, time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)
}

func TestNewReservationStartsPresent(t *testing.T) {
	slot := slotAt(time.Now())
	r := NewReservation(7, slot)

	assert.Equal(t, uint(7), r.UserID)
	assert.Equal(t, slot.ID, r.SlotID)
	assert.True(t, r.Presence)
}
