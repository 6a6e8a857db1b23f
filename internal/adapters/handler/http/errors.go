package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrTaskTitleEmpty,
	domain.ErrTaskTitleTooLong,
	domain.ErrInvalidHabitDays,
	domain.ErrInvalidTarget,
	domain.ErrUnknownCategory,
	domain.ErrWheelValueOutOfRange,
	domain.ErrSnapshotPeriodEmpty,
	calendar.ErrInvalidDayKey,
	calendar.ErrInvalidMonth,
	calendar.ErrInvalidMode,
	calendar.ErrInvalidRange,
}

var notFoundErrors = []error{
	domain.ErrTaskNotFound,
	domain.ErrHabitNotFound,
	domain.ErrSnapshotNotFound,
}

// respondError maps service errors onto status codes. Anything unknown is
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, gin.H{"error": target.Error()})
			return
		}
	}

	log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindOptionalJSON binds the body when there is one; an empty body leaves
// obj untouched.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// parseDay reads a YYYY-MM-DD value in loc. An empty value yields the zero
// time, which services read as "today".
func parseDay(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return calendar.ParseDayKey(raw, loc)
}
