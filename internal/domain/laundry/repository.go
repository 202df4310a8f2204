package laundry

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

// Repository is the entity store used by the use cases. Lookups of missing
// records return the matching Err*NotFound.
type Repository interface {
	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- User --------
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error

	// -------- Washer --------
	GetWasher(ctx context.Context, id uint) (*models.Washer, error)
	ListWashers(ctx context.Context) ([]models.Washer, error)
	CreateWasher(ctx context.Context, w *models.Washer) error
	UpdateWasher(ctx context.Context, w *models.Washer) error
	DeleteWasher(ctx context.Context, id uint) error

	// -------- Available slot --------
	GetSlot(ctx context.Context, id uint) (*models.AvailableSlot, error)
	ListSlots(ctx context.Context, from time.Time) ([]models.AvailableSlot, error)

	// ListSlotsNear returns the washer's slots with start < to and end >= from.
	ListSlotsNear(
		ctx context.Context,
		washerID uint,
		from time.Time,
		to time.Time,
	) ([]models.AvailableSlot, error)

	// ListUnreservedSlots returns slots no reservation points to, starting in
	// [from, to). A zero to means no upper bound.
	ListUnreservedSlots(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.AvailableSlot, error)

	CreateSlot(ctx context.Context, s *models.AvailableSlot) error
	UpdateSlot(ctx context.Context, s *models.AvailableSlot) error
	DeleteSlot(ctx context.Context, id uint) error

	// -------- Reserved slot --------
	IsSlotReserved(ctx context.Context, slotID uint) (bool, error)

	// CountAbsences counts the user's reservations with presence=false whose
	// slot started in [from, to].
	CountAbsences(
		ctx context.Context,
		userID uint,
		from time.Time,
		to time.Time,
	) (int64, error)

	// CountActiveReservations counts the user's reservations whose slot
	// starts at or after from.
	CountActiveReservations(
		ctx context.Context,
		userID uint,
		from time.Time,
	) (int64, error)

	// CreateReservation fails with ErrSlotUnavailable when the slot already
	// has a reservation.
	CreateReservation(ctx context.Context, r *models.ReservedSlot) error
	GetReservation(ctx context.Context, id uint) (*models.ReservedSlot, error)
	ListUserReservations(ctx context.Context, userID uint, from time.Time) ([]models.ReservedSlot, error)
	ListReservations(ctx context.Context, from time.Time) ([]models.ReservedSlot, error)
	UpdateReservation(ctx context.Context, r *models.ReservedSlot) error
	DeleteReservation(ctx context.Context, id uint) error
}
