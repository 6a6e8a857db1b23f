package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
	loc *time.Location
}

func NewHabitHandler(svc *services.HabitService, loc *time.Location) *HabitHandler {
	if loc == nil {
		loc = time.Local
	}
	return &HabitHandler{
		svc: svc,
		loc: loc,
	}
}

type createHabitRequest struct {
	Title      string `json:"title" binding:"required"`
	Category   string `json:"category" binding:"required"`
	TargetDays int    `json:"target_days"`
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PATCH("/:id/toggle", h.Toggle)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		Title:      req.Title,
		Category:   req.Category,
		TargetDays: req.TargetDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Toggle flips today, or the day given as {"date": "YYYY-MM-DD"}.
func (h *HabitHandler) Toggle(c *gin.Context) {
	var req toggleHabitRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := parseDay(req.Date, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	id := c.Param("id")
	if day.IsZero() {
		habit, err := h.svc.ToggleToday(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, habit)
		return
	}

	habit, err := h.svc.ToggleDay(c.Request.Context(), id, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
