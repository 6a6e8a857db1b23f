package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/render"
	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

type WheelHandler struct {
	svc   *services.WheelService
	chart radar.Chart
}

func NewWheelHandler(svc *services.WheelService) *WheelHandler {
	return &WheelHandler{
		svc:   svc,
		chart: radar.DefaultChart(),
	}
}

type rateAreaRequest struct {
	Value *int `json:"value" binding:"required"`
}

func (h *WheelHandler) RegisterRoutes(router *gin.RouterGroup) {
	wheel := router.Group("/wheel")
	{
		wheel.GET("", h.State)
		wheel.GET("/svg", h.SVG)
		wheel.PUT("/:category", h.Rate)
		wheel.POST("/reset", h.Reset)
	}
}

func (h *WheelHandler) writeState(c *gin.Context) {
	state, err := h.svc.State(c.Request.Context(), h.chart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *WheelHandler) State(c *gin.Context) {
	h.writeState(c)
}

func (h *WheelHandler) SVG(c *gin.Context) {
	geometry, err := h.svc.Chart(c.Request.Context(), h.chart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(render.WheelSVG(geometry)))
}

func (h *WheelHandler) Rate(c *gin.Context) {
	var req rateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Rate(c.Request.Context(), c.Param("category"), *req.Value); err != nil {
		respondError(c, err)
		return
	}

	h.writeState(c)
}

func (h *WheelHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	h.writeState(c)
}
