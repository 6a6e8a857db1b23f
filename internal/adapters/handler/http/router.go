package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-balance/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	CategoryHandler *CategoryHandler
	TaskHandler     *TaskHandler
	HabitHandler    *HabitHandler
	ScoreHandler    *ScoreHandler
	SnapshotHandler *SnapshotHandler
	WheelHandler    *WheelHandler
	// Counter enables rate limiting when set.
	Counter     cache.Counter
	RateLimit   int
	RateWindow  time.Duration
	StartTime   time.Time
	CategorySet string
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	if deps.Counter != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Counter, deps.RateLimit, deps.RateWindow))
	}

	router.GET("/health", func(c *gin.Context) {
		limiterStatus := "disabled"
		statusCode := http.StatusOK
		if deps.Counter != nil {
			limiterStatus = "connected"
			if err := deps.Counter.Ping(c.Request.Context()); err != nil {
				limiterStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		c.JSON(statusCode, gin.H{
			"status":       "ok",
			"categories":   deps.CategorySet,
			"rate_limiter": limiterStatus,
			"uptime":       time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	deps.CategoryHandler.RegisterRoutes(apiV1)
	deps.TaskHandler.RegisterRoutes(apiV1)
	deps.HabitHandler.RegisterRoutes(apiV1)
	deps.ScoreHandler.RegisterRoutes(apiV1)
	deps.SnapshotHandler.RegisterRoutes(apiV1)
	deps.WheelHandler.RegisterRoutes(apiV1)

	return router
}
