package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

type WasherRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type WasherHandler struct {
	repo  laundry.Repository
	audit *audit.Dispatcher
}

func NewWasherHandler(repo laundry.Repository, audit *audit.Dispatcher) *WasherHandler {
	return &WasherHandler{repo: repo, audit: audit}
}

func (h *WasherHandler) Resource() Resource[WasherRequest] {
	return Resource[WasherRequest]{
		Kind:   "lavadora",
		List:   h.list,
		Save:   h.save,
		Delete: h.delete,
	}
}

func (h *WasherHandler) list(c *gin.Context) ([]any, error) {
	washers, err := h.repo.ListWashers(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return items(washers), nil
}

func (h *WasherHandler) save(c *gin.Context, id *uint, in WasherRequest) (any, error) {
	ctx := c.Request.Context()
	staffID := actorID(c)

	if id == nil {
		w := &models.Washer{Name: strings.TrimSpace(in.Name)}
		if err := h.repo.CreateWasher(ctx, w); err != nil {
			return nil, err
		}
		h.audit.Dispatch(audit.Event{UserID: &staffID, Action: audit.ActionWasherCreated, Entity: "washer", EntityID: &w.ID})
		return w, nil
	}

	w, err := h.repo.GetWasher(ctx, *id)
	if err != nil {
		return nil, err
	}
	w.Name = strings.TrimSpace(in.Name)
	if err := h.repo.UpdateWasher(ctx, w); err != nil {
		return nil, err
	}
	h.audit.Dispatch(audit.Event{UserID: &staffID, Action: audit.ActionWasherUpdated, Entity: "washer", EntityID: &w.ID})
	return w, nil
}

func (h *WasherHandler) delete(c *gin.Context, id uint) error {
	if err := h.repo.DeleteWasher(c.Request.Context(), id); err != nil {
		return err
	}
	staffID := actorID(c)
	h.audit.Dispatch(audit.Event{UserID: &staffID, Action: audit.ActionWasherDeleted, Entity: "washer", EntityID: &id})
	return nil
}
