package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/dto"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/timezone"
)

// ======================================================
// USER: minhas reservas
// ======================================================

type ListMyReservations struct {
	repo laundry.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewListMyReservations(
	repo laundry.Repository,
	loc *time.Location,
) *ListMyReservations {
	return &ListMyReservations{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (uc *ListMyReservations) WithClock(now func() time.Time) *ListMyReservations {
	uc.now = now
	return uc
}

// Execute lists the user's reservations from the start of today on.
func (uc *ListMyReservations) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.ReservationDTO, error) {

	from := timezone.StartOfDay(uc.now(), uc.loc)

	list, err := uc.repo.ListUserReservations(ctx, userID, from)
	if err != nil {
		return nil, err
	}

	return dto.NewReservationDTOs(list, uc.loc), nil
}

// ======================================================
// STAFF: reservas a partir de uma data
// ======================================================

type ListReservationsByDate struct {
	repo laundry.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewListReservationsByDate(
	repo laundry.Repository,
	loc *time.Location,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (uc *ListReservationsByDate) WithClock(now func() time.Time) *ListReservationsByDate {
	uc.now = now
	return uc
}

// Execute lists every reservation whose slot starts on or after date.
// An empty or malformed date means today.
func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.ReservationDTO, error) {

	day, _ := timezone.DayOrToday(date, uc.now(), uc.loc)

	list, err := uc.repo.ListReservations(ctx, day)
	if err != nil {
		return nil, err
	}

	return dto.NewReservationDTOs(list, uc.loc), nil
}
