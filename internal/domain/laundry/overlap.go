package laundry

import (
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

func ValidateDuration(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// OverlapSearchRange returns the window of existing slot starts/ends that may
// conflict with a candidate, so the store can prefilter: existing slots with
// start < to and end >= from.
func (p Policy) OverlapSearchRange(start time.Time, d time.Duration) (from, to time.Time) {
	from = start.Add(-p.StartTolerance)
	to = start.Add(d)
	if near := start.Add(p.StartTolerance); to.Before(near) {
		to = near
	}
	return from, to
}

// CheckOverlap rejects candidate when it collides with one of existing.
// existing must hold slots of the same washer only.
func (p Policy) CheckOverlap(candidate *models.AvailableSlot, existing []models.AvailableSlot) error {
	if err := ValidateDuration(candidate.Duration()); err != nil {
		return err
	}

	for i := range existing {
		ex := &existing[i]
		if ex.ID != 0 && ex.ID == candidate.ID {
			continue
		}
		if p.conflicts(candidate, ex) {
			return ErrSlotOverlap
		}
	}
	return nil
}

func (p Policy) conflicts(cand, ex *models.AvailableSlot) bool {
	candStart, candEnd := cand.Start, cand.End()
	exStart, exEnd := ex.Start, ex.End()

	startsInside := !exStart.Before(candStart.Add(-p.StartTolerance)) && exStart.Before(candEnd)
	if p.OverlapMode == OverlapLegacy {
		return startsInside
	}

	diff := exStart.Sub(candStart)
	if diff < 0 {
		diff = -diff
	}
	simultaneous := diff < p.StartTolerance
	intersects := exStart.Before(candEnd) && exEnd.After(candStart)

	return startsInside || simultaneous || intersects
}
