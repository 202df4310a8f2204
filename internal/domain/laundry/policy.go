package laundry

import "time"

type OverlapMode string

const (
	// OverlapInterval rejects any intersection of [start, end) ranges, plus
	// everything OverlapLegacy rejects.
	OverlapInterval OverlapMode = "interval"
	// OverlapLegacy only rejects existing slots whose start falls inside
	// [start - tolerance, end) of the candidate.
	OverlapLegacy OverlapMode = "legacy"
)

func (m OverlapMode) Valid() bool {
	return m == OverlapInterval || m == OverlapLegacy
}

// Policy holds the thresholds of the booking rules.
type Policy struct {
	// Slots starting HorizonDays or more calendar days ahead cannot be booked.
	HorizonDays int
	// Users with MaxAbsences no-shows inside AbsenceWindow cannot book.
	MaxAbsences   int64
	AbsenceWindow time.Duration
	// Users holding MaxActive reservations that have not started cannot book.
	MaxActive int64

	// Existing slots starting less than StartTolerance before a new slot
	// count as simultaneous.
	StartTolerance time.Duration
	OverlapMode    OverlapMode
}

func DefaultPolicy() Policy {
	return Policy{
		HorizonDays:    15,
		MaxAbsences:    2,
		AbsenceWindow:  30 * 24 * time.Hour,
		MaxActive:      2,
		StartTolerance: time.Second,
		OverlapMode:    OverlapInterval,
	}
}
