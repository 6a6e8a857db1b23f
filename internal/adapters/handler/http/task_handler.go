package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

type TaskHandler struct {
	svc *services.TaskService
	loc *time.Location
}

func NewTaskHandler(svc *services.TaskService, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TaskHandler{
		svc: svc,
		loc: loc,
	}
}

type createTaskRequest struct {
	Title     string `json:"title" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Date      string `json:"date"`
	IsHabit   bool   `json:"is_habit"`
	HabitDays int    `json:"habit_days"`
}

type createSeriesRequest struct {
	Title     string `json:"title" binding:"required"`
	Category  string `json:"category" binding:"required"`
	StartDate string `json:"start_date"`
	Days      int    `json:"days" binding:"required"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.POST("/series", h.CreateSeries)
		tasks.GET("", h.List)
		tasks.PATCH("/:id/toggle", h.Toggle)
		tasks.DELETE("/:id", h.Delete)
	}
	router.DELETE("/series/:id", h.DeleteSeries)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDay(req.Date, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.svc.AddTask(c.Request.Context(), services.AddTaskInput{
		Title:     req.Title,
		Category:  req.Category,
		Date:      date,
		IsHabit:   req.IsHabit,
		HabitDays: req.HabitDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) CreateSeries(c *gin.Context) {
	var req createSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDay(req.StartDate, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	series, err := h.svc.AddHabitSeries(c.Request.Context(), services.AddSeriesInput{
		Title:     req.Title,
		Category:  req.Category,
		StartDate: start,
		Days:      req.Days,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"series_id": series[0].SeriesID,
		"tasks":     series,
	})
}

// List serves ?view=day|week|month&date=YYYY-MM-DD, defaulting to today.
func (h *TaskHandler) List(c *gin.Context) {
	mode, err := calendar.ParseMode(c.Query("view"))
	if err != nil {
		respondError(c, err)
		return
	}

	focus, err := parseDay(c.Query("date"), h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.svc.ListForView(c.Request.Context(), mode, focus)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	task, err := h.svc.ToggleCompletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) DeleteSeries(c *gin.Context) {
	if err := h.svc.DeleteSeries(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
