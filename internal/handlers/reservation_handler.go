package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/dto"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/reservation"
)

type ReservationHandler struct {
	listMine   *ucReservation.ListMyReservations
	listByDate *ucReservation.ListReservationsByDate
	cancel     *ucReservation.CancelReservation
	toggle     *ucReservation.TogglePresence
	delete     *ucReservation.DeleteReservation
	loc        *time.Location
}

func NewReservationHandler(
	listMine *ucReservation.ListMyReservations,
	listByDate *ucReservation.ListReservationsByDate,
	cancel *ucReservation.CancelReservation,
	toggle *ucReservation.TogglePresence,
	delete *ucReservation.DeleteReservation,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		listMine:   listMine,
		listByDate: listByDate,
		cancel:     cancel,
		toggle:     toggle,
		delete:     delete,
		loc:        loc,
	}
}

// ======================================================
// USER
// ======================================================

func (h *ReservationHandler) ListMine(c *gin.Context) {
	list, err := h.listMine.Execute(c.Request.Context(), actorID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), actorID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// STAFF
// ======================================================

// ListByDate GET /api/staff/reservations?date=YYYY-MM-DD
func (h *ReservationHandler) ListByDate(c *gin.Context) {
	list, err := h.listByDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReservationHandler) TogglePresence(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	r, err := h.toggle.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewReservationDTO(r, h.loc))
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actorID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
