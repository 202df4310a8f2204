package laundry

import (
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/timezone"
)

// EligibilitySnapshot is what the store knows about a (user, slot) pair at
// the moment of a booking attempt.
type EligibilitySnapshot struct {
	Slot *models.AvailableSlot

	AlreadyBooked bool
	// RecentAbsences counts the user's no-shows inside the absence window.
	RecentAbsences int64
	// ActiveReservations counts the user's reservations starting at or after now.
	ActiveReservations int64
}

// AbsenceWindowAt returns the [from, to] range in which no-shows are counted.
func (p Policy) AbsenceWindowAt(now time.Time) (time.Time, time.Time) {
	return now.Add(-p.AbsenceWindow), now
}

// CheckEligibility applies the booking gates in order and returns the first
// violated one.
func (p Policy) CheckEligibility(s EligibilitySnapshot, now time.Time, loc *time.Location) error {
	if s.AlreadyBooked {
		return ErrSlotUnavailable
	}

	if timezone.CalendarDaysBetween(now, s.Slot.Start, loc) >= p.HorizonDays {
		return ErrTooFarInAdvance
	}

	if s.RecentAbsences >= p.MaxAbsences {
		return ErrTooManyAbsences
	}

	if s.ActiveReservations >= p.MaxActive {
		return ErrTooManyActiveReservations
	}

	return nil
}

// NewReservation builds the record created when every gate passes.
func NewReservation(userID uint, slot *models.AvailableSlot) *models.ReservedSlot {
	return &models.ReservedSlot{
		SlotID:   slot.ID,
		Slot:     *slot,
		UserID:   userID,
		Presence: true,
	}
}
