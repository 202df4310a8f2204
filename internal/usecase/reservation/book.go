package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/lock"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/metrics"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

const bookingLockTTL = 10 * time.Second

// ======================================================
// USE CASE
// ======================================================

type BookReservation struct {
	repo    laundry.Repository
	locker  lock.Locker
	policy  laundry.Policy
	loc     *time.Location
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBookReservation(
	repo laundry.Repository,
	locker lock.Locker,
	policy laundry.Policy,
	loc *time.Location,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *BookReservation {
	return &BookReservation{
		repo:    repo,
		locker:  locker,
		policy:  policy,
		loc:     loc,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

func (uc *BookReservation) WithClock(now func() time.Time) *BookReservation {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookReservation) Execute(
	ctx context.Context,
	userID uint,
	slotID uint,
) (*models.ReservedSlot, error) {

	// --------------------------------------------------
	// 1️⃣ Um agendamento por usuário de cada vez
	// --------------------------------------------------
	if uc.locker != nil {
		key := fmt.Sprintf("booking:user:%d", userID)
		token, ok, err := uc.locker.Lock(ctx, key, bookingLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			uc.metrics.BookingDecision(httperr.CodeOf(laundry.ErrBookingInProgress))
			return nil, laundry.ErrBookingInProgress
		}
		defer func() {
			if err := uc.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
				slog.Error("failed to release booking lock", slog.String("key", key), slog.Any("error", err))
			}
		}()
	}

	now := uc.now()
	var created *models.ReservedSlot

	err := uc.repo.Transaction(ctx, func(tx laundry.Repository) error {

		// --------------------------------------------------
		// 2️⃣ Snapshot
		// --------------------------------------------------
		slot, err := tx.GetSlot(ctx, slotID)
		if err != nil {
			return err
		}

		booked, err := tx.IsSlotReserved(ctx, slot.ID)
		if err != nil {
			return err
		}

		from, to := uc.policy.AbsenceWindowAt(now)
		absences, err := tx.CountAbsences(ctx, userID, from, to)
		if err != nil {
			return err
		}

		active, err := tx.CountActiveReservations(ctx, userID, now)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 3️⃣ Regras
		// --------------------------------------------------
		if err := uc.policy.CheckEligibility(laundry.EligibilitySnapshot{
			Slot:               slot,
			AlreadyBooked:      booked,
			RecentAbsences:     absences,
			ActiveReservations: active,
		}, now, uc.loc); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Criação
		// --------------------------------------------------
		r := laundry.NewReservation(userID, slot)
		if err := tx.CreateReservation(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})

	if err != nil {
		uc.metrics.BookingDecision(httperr.CodeOf(err))
		slog.Warn("booking rejected",
			slog.Uint64("user_id", uint64(userID)),
			slog.Uint64("slot_id", uint64(slotID)),
			slog.String("reason", httperr.CodeOf(err)),
		)
		return nil, err
	}

	uc.metrics.BookingDecision("booked")

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   audit.ActionReservationCreated,
		Entity:   "reserved_slot",
		EntityID: &created.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return created, nil
}
