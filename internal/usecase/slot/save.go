package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SlotInput struct {
	WasherID uint
	Start    time.Time
	Duration time.Duration
}

// ======================================================
// USE CASE
// ======================================================

// SaveSlot creates or updates an available slot after running the overlap
// validator against the washer's other slots.
type SaveSlot struct {
	repo   laundry.Repository
	policy laundry.Policy
	audit  *audit.Dispatcher
}

func NewSaveSlot(
	repo laundry.Repository,
	policy laundry.Policy,
	audit *audit.Dispatcher,
) *SaveSlot {
	return &SaveSlot{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

func (uc *SaveSlot) Create(
	ctx context.Context,
	staffID uint,
	in SlotInput,
) (*models.AvailableSlot, error) {

	s := &models.AvailableSlot{}
	if err := uc.save(ctx, s, in, true); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionSlotCreated,
		Entity:   "available_slot",
		EntityID: &s.ID,
	})
	return s, nil
}

func (uc *SaveSlot) Update(
	ctx context.Context,
	staffID uint,
	slotID uint,
	in SlotInput,
) (*models.AvailableSlot, error) {

	s := &models.AvailableSlot{ID: slotID}
	if err := uc.save(ctx, s, in, false); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionSlotUpdated,
		Entity:   "available_slot",
		EntityID: &s.ID,
	})
	return s, nil
}

func (uc *SaveSlot) save(
	ctx context.Context,
	s *models.AvailableSlot,
	in SlotInput,
	create bool,
) error {

	if err := laundry.ValidateDuration(in.Duration); err != nil {
		return err
	}

	return uc.repo.Transaction(ctx, func(tx laundry.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Slot existente / lavadora
		// --------------------------------------------------
		if !create {
			current, err := tx.GetSlot(ctx, s.ID)
			if err != nil {
				return err
			}
			*s = *current
		}

		washer, err := tx.GetWasher(ctx, in.WasherID)
		if err != nil {
			return err
		}

		s.WasherID = washer.ID
		s.Washer = *washer
		s.Start = in.Start
		s.SetDuration(in.Duration)

		// --------------------------------------------------
		// 2️⃣ Sobreposição
		// --------------------------------------------------
		from, to := uc.policy.OverlapSearchRange(s.Start, s.Duration())
		existing, err := tx.ListSlotsNear(ctx, washer.ID, from, to)
		if err != nil {
			return err
		}
		if err := uc.policy.CheckOverlap(s, existing); err != nil {
			return err
		}

		// --------------------------------------------------
		// 3️⃣ Persistência
		// --------------------------------------------------
		if create {
			return tx.CreateSlot(ctx, s)
		}
		return tx.UpdateSlot(ctx, s)
	})
}
