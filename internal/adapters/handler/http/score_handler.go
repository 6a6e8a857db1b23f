package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/render"
	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

const maxWindowDays = 366

type ScoreHandler struct {
	svc   *services.ScoreService
	loc   *time.Location
	chart radar.Chart
}

func NewScoreHandler(svc *services.ScoreService, loc *time.Location) *ScoreHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ScoreHandler{
		svc:   svc,
		loc:   loc,
		chart: radar.DefaultChart(),
	}
}

func (h *ScoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	scores := router.Group("/scores")
	{
		scores.GET("", h.Card)
		scores.GET("/radar", h.Radar)
		scores.GET("/radar.svg", h.RadarSVG)
	}
}

// window reads ?from=&to=. Both missing means the current month; a single
// bound is completed to the end or start of its month.
func (h *ScoreHandler) window(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseDay(c.Query("from"), h.loc)
	if err != nil {
		respondError(c, err)
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDay(c.Query("to"), h.loc)
	if err != nil {
		respondError(c, err)
		return time.Time{}, time.Time{}, false
	}

	switch {
	case from.IsZero() && to.IsZero():
		from, to = h.svc.CurrentMonth()
	case to.IsZero():
		to = calendar.EndOfMonth(from)
	case from.IsZero():
		from = calendar.StartOfMonth(to)
	}

	if from.After(to) {
		respondError(c, calendar.ErrInvalidRange)
		return time.Time{}, time.Time{}, false
	}

	if calendar.AddDays(from, maxWindowDays-1).Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

func (h *ScoreHandler) Card(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	card, err := h.svc.ScoreCard(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *ScoreHandler) Radar(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	geometry, err := h.svc.Radar(c.Request.Context(), from, to, h.chart)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, geometry)
}

func (h *ScoreHandler) RadarSVG(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	geometry, err := h.svc.Radar(c.Request.Context(), from, to, h.chart)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", []byte(render.WheelSVG(geometry)))
}
