package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
)

type CancelReservation struct {
	repo  laundry.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelReservation(
	repo laundry.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CancelReservation) WithClock(now func() time.Time) *CancelReservation {
	uc.now = now
	return uc
}

// Execute deletes the caller's own reservation if its slot has not started.
// Reservations of other users are reported as not found.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
) error {

	err := uc.repo.Transaction(ctx, func(tx laundry.Repository) error {
		r, err := tx.GetReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if r.UserID != userID {
			return laundry.ErrReservationNotFound
		}

		if err := laundry.CanCancel(r, uc.now()); err != nil {
			return err
		}

		return tx.DeleteReservation(ctx, r.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   audit.ActionReservationCancelled,
		Entity:   "reserved_slot",
		EntityID: &reservationID,
	})

	return nil
}
