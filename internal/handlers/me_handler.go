package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	httpresp.OK(c, gin.H{
		"user": user,
		"role": laundry.RoleOf(user).String(),
	})
}
