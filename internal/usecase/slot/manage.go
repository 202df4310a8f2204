package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/dto"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/timezone"
)

type DeleteSlot struct {
	repo  laundry.Repository
	audit *audit.Dispatcher
}

func NewDeleteSlot(repo laundry.Repository, audit *audit.Dispatcher) *DeleteSlot {
	return &DeleteSlot{repo: repo, audit: audit}
}

// Execute removes the slot together with its reservation, if any.
func (uc *DeleteSlot) Execute(ctx context.Context, staffID uint, slotID uint) error {
	if err := uc.repo.DeleteSlot(ctx, slotID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionSlotDeleted,
		Entity:   "available_slot",
		EntityID: &slotID,
	})
	return nil
}

// ======================================================
// LISTAGENS
// ======================================================

type ListSlots struct {
	repo laundry.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewListSlots(repo laundry.Repository, loc *time.Location) *ListSlots {
	return &ListSlots{repo: repo, loc: loc, now: time.Now}
}

func (uc *ListSlots) WithClock(now func() time.Time) *ListSlots {
	uc.now = now
	return uc
}

// All lists every slot for staff, reserved or not, starting on or after the
// given day. An empty or malformed date lists everything.
func (uc *ListSlots) All(ctx context.Context, date string) ([]dto.SlotDTO, error) {
	var from time.Time
	if day, ok := timezone.DayOrToday(date, uc.now(), uc.loc); ok {
		from = day
	}

	slots, err := uc.repo.ListSlots(ctx, from)
	if err != nil {
		return nil, err
	}
	return dto.NewSlotDTOs(slots, uc.loc), nil
}

// Available lists slots nobody reserved. With a valid date it returns that
// calendar day, otherwise every slot starting from now.
func (uc *ListSlots) Available(ctx context.Context, date string) ([]dto.SlotDTO, error) {
	now := uc.now()

	from, to := now, time.Time{}
	if day, ok := timezone.DayOrToday(date, now, uc.loc); ok {
		from, to = day, day.AddDate(0, 0, 1)
	}

	slots, err := uc.repo.ListUnreservedSlots(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return dto.NewSlotDTOs(slots, uc.loc), nil
}
