package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

type SnapshotHandler struct {
	svc *services.SnapshotService
}

func NewSnapshotHandler(svc *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

type saveSnapshotRequest struct {
	Period string `json:"period"`
}

func (h *SnapshotHandler) RegisterRoutes(router *gin.RouterGroup) {
	snapshots := router.Group("/snapshots")
	{
		snapshots.GET("", h.List)
		snapshots.POST("", h.Save)
		snapshots.GET("/:period", h.Get)
		snapshots.DELETE("/:period", h.Delete)
	}
}

func (h *SnapshotHandler) List(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Save freezes the month in {"period": "YYYY-MM"}; no body means the
// current month.
func (h *SnapshotHandler) Save(c *gin.Context) {
	var req saveSnapshotRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.svc.Save(c.Request.Context(), req.Period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snap)
}

func (h *SnapshotHandler) Get(c *gin.Context) {
	snap, err := h.svc.Get(c.Request.Context(), c.Param("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *SnapshotHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("period")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
