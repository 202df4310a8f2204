package reservation

import (
	"context"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
)

// DeleteReservation is the staff override: no time restriction applies.
type DeleteReservation struct {
	repo  laundry.Repository
	audit *audit.Dispatcher
}

func NewDeleteReservation(
	repo laundry.Repository,
	audit *audit.Dispatcher,
) *DeleteReservation {
	return &DeleteReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteReservation) Execute(
	ctx context.Context,
	staffID uint,
	reservationID uint,
) error {

	if err := uc.repo.DeleteReservation(ctx, reservationID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionReservationDeleted,
		Entity:   "reserved_slot",
		EntityID: &reservationID,
	})

	return nil
}
