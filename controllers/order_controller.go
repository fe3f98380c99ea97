package controllers

import (
	"strconv"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/pkg/resp"
	"github.com/Deji-py/eco-rider/services"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc     *services.AssignmentService
	History *services.HistoryService
}

func NewOrderController(svc *services.AssignmentService, history *services.HistoryService) *OrderController {
	return &OrderController{Svc: svc, History: history}
}

type RejectReq struct {
	Reason string `json:"reason" binding:"required"`
}

type ConfirmReq struct {
	Status string `json:"status" binding:"required,oneof=picked_up delivered"`
	Code   string `json:"code" binding:"required,len=6"`
}

func assignmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid assignment id")
		return 0, false
	}
	return uint(id), true
}

// GET /orders/pending
func (h *OrderController) Pending(c *gin.Context) {
	rows, err := h.Svc.Pending(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/active
func (h *OrderController) Active(c *gin.Context) {
	rows, err := h.Svc.Active(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	d, err := h.Svc.Detail(utils.CurrentUserID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, d)
}

// POST /orders/:id/accept
func (h *OrderController) Accept(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	if err := h.Svc.Accept(utils.CurrentUserID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"accepted": true})
}

// POST /orders/:id/reject
func (h *OrderController) Reject(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	var req RejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Reject(utils.CurrentUserID(c), id, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"rejected": true})
}

// POST /orders/:id/transit
func (h *OrderController) MarkInTransit(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	if err := h.Svc.MarkInTransit(utils.CurrentUserID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": entity.StatusInTransit})
}

// POST /orders/:id/confirm — the verification gate
func (h *OrderController) Confirm(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	var req ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	target := entity.AssignmentStatus(req.Status)
	if err := h.Svc.Confirm(utils.CurrentUserID(c), id, target, req.Code); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": target})
}

// GET /orders/history?status=&sortBy=
func (h *OrderController) HistoryList(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	sortBy := services.SortBy(c.DefaultQuery("sortBy", "recent"))

	rows, stats, err := h.History.List(utils.CurrentUserID(c), status, sortBy)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": rows, "stats": stats})
}
