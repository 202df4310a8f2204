package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/dto"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/reservation"
	ucSlot "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/slot"
)

// SlotRequest carries start as RFC3339 or local "YYYY-MM-DD HH:MM", and
// duration as "1h30m" or "01:30:00".
type SlotRequest struct {
	WasherID uint   `json:"washer_id" binding:"required"`
	Start    string `json:"start" binding:"required"`
	Duration string `json:"duration" binding:"required"`
}

type SlotHandler struct {
	save   *ucSlot.SaveSlot
	delete *ucSlot.DeleteSlot
	list   *ucSlot.ListSlots
	book   *ucReservation.BookReservation
	loc    *time.Location
}

func NewSlotHandler(
	save *ucSlot.SaveSlot,
	delete *ucSlot.DeleteSlot,
	list *ucSlot.ListSlots,
	book *ucReservation.BookReservation,
	loc *time.Location,
) *SlotHandler {
	return &SlotHandler{
		save:   save,
		delete: delete,
		list:   list,
		book:   book,
		loc:    loc,
	}
}

// ======================================================
// STAFF
// ======================================================

func (h *SlotHandler) Resource() Resource[SlotRequest] {
	return Resource[SlotRequest]{
		Kind: "horário",
		List: func(c *gin.Context) ([]any, error) {
			slots, err := h.list.All(c.Request.Context(), c.Query("date"))
			if err != nil {
				return nil, err
			}
			return items(slots), nil
		},
		Save: h.saveSlot,
		Delete: func(c *gin.Context, id uint) error {
			return h.delete.Execute(c.Request.Context(), actorID(c), id)
		},
	}
}

func (h *SlotHandler) saveSlot(c *gin.Context, id *uint, in SlotRequest) (any, error) {
	start, err := parseDateTime(in.Start, h.loc)
	if err != nil {
		return nil, err
	}
	d, err := parseDuration(in.Duration)
	if err != nil {
		return nil, err
	}

	input := ucSlot.SlotInput{WasherID: in.WasherID, Start: start, Duration: d}
	ctx := c.Request.Context()

	if id == nil {
		s, err := h.save.Create(ctx, actorID(c), input)
		if err != nil {
			return nil, err
		}
		return dto.NewSlotDTO(s, h.loc), nil
	}

	s, err := h.save.Update(ctx, actorID(c), *id, input)
	if err != nil {
		return nil, err
	}
	return dto.NewSlotDTO(s, h.loc), nil
}

// ======================================================
// USER
// ======================================================

// ListAvailable GET /api/slots?date=YYYY-MM-DD
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	slots, err := h.list.Available(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, slots)
}

// Book POST /api/slots/:id/book
func (h *SlotHandler) Book(c *gin.Context) {
	slotID, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	r, err := h.book.Execute(c.Request.Context(), actorID(c), slotID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewReservationDTO(r, h.loc))
}
