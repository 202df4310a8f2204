package laundry

import (
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CanCancel allows a user to cancel only reservations that have not started.
func CanCancel(r *models.ReservedSlot, now time.Time) error {
	if r.Slot.Start.Before(now) {
		return ErrPastReservation
	}
	return nil
}

// TogglePresence flips the attendance flag. A no-show cannot be recorded
// before the slot starts; marking presence back is always allowed.
func TogglePresence(r *models.ReservedSlot, now time.Time) error {
	if r.Presence && now.Before(r.Slot.Start) {
		return ErrPresenceInFuture
	}
	r.Presence = !r.Presence
	return nil
}
