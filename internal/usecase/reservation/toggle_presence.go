package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

type TogglePresence struct {
	repo  laundry.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewTogglePresence(
	repo laundry.Repository,
	audit *audit.Dispatcher,
) *TogglePresence {
	return &TogglePresence{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *TogglePresence) WithClock(now func() time.Time) *TogglePresence {
	uc.now = now
	return uc
}

func (uc *TogglePresence) Execute(
	ctx context.Context,
	staffID uint,
	reservationID uint,
) (*models.ReservedSlot, error) {

	var r *models.ReservedSlot
	err := uc.repo.Transaction(ctx, func(tx laundry.Repository) error {
		var err error
		r, err = tx.GetReservation(ctx, reservationID)
		if err != nil {
			return err
		}

		if err := laundry.TogglePresence(r, uc.now()); err != nil {
			return err
		}

		return tx.UpdateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionPresenceToggled,
		Entity:   "reserved_slot",
		EntityID: &r.ID,
		Metadata: map[string]any{"presence": r.Presence},
	})

	return r, nil
}
