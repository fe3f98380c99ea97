package controllers

import (
	"github.com/Deji-py/eco-rider/pkg/resp"
	"github.com/Deji-py/eco-rider/services"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct{ Svc *services.AnalyticsService }

func NewAnalyticsController(s *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: s}
}

// GET /analytics
func (h *AnalyticsController) Stats(c *gin.Context) {
	data, err := h.Svc.Stats(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, data)
}
