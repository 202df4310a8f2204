package dto

import (
	"time"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

type SlotDTO struct {
	ID              uint      `json:"id"`
	WasherID        uint      `json:"washer_id"`
	WasherName      string    `json:"washer_name"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds int64     `json:"duration_seconds"`
}

type ReservationDTO struct {
	ID       uint    `json:"id"`
	Slot     SlotDTO `json:"slot"`
	Presence bool    `json:"presence"`

	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	Apartment string `json:"apartment,omitempty"`
}

func NewSlotDTO(s *models.AvailableSlot, loc *time.Location) SlotDTO {
	return SlotDTO{
		ID:              s.ID,
		WasherID:        s.WasherID,
		WasherName:      s.Washer.Name,
		Start:           s.Start.In(loc),
		End:             s.End().In(loc),
		DurationSeconds: s.DurationSeconds,
	}
}

func NewSlotDTOs(slots []models.AvailableSlot, loc *time.Location) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for i := range slots {
		out = append(out, NewSlotDTO(&slots[i], loc))
	}
	return out
}

func NewReservationDTO(r *models.ReservedSlot, loc *time.Location) ReservationDTO {
	return ReservationDTO{
		ID:        r.ID,
		Slot:      NewSlotDTO(&r.Slot, loc),
		Presence:  r.Presence,
		UserID:    r.UserID,
		Username:  r.User.Username,
		UserName:  r.User.Name,
		Apartment: r.User.Apartment,
	}
}

func NewReservationDTOs(list []models.ReservedSlot, loc *time.Location) []ReservationDTO {
	out := make([]ReservationDTO, 0, len(list))
	for i := range list {
		out = append(out, NewReservationDTO(&list[i], loc))
	}
	return out
}
