package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-routines/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type RouterDependencies struct {
	Store     *services.TrackingStore
	Analytics *services.AnalyticsService
	// DB and Redis are optional and only reported by /health when set.
	DB        *sqlx.DB
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit, 1*time.Minute))
	}

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")

	NewViewHandler(deps.Store).RegisterRoutes(apiV1)
	NewRoutineHandler(deps.Store).RegisterRoutes(apiV1)
	NewHabitHandler(deps.Store).RegisterRoutes(apiV1)
	NewStatsHandler(deps.Analytics).RegisterRoutes(apiV1)
	NewSnapshotHandler(deps.Store).RegisterRoutes(apiV1)

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{
			"status":   "ok",
			"routines": len(deps.Store.Routines()),
			"habits":   len(deps.Store.Habits()),
			"uptime":   time.Since(deps.StartTime).String(),
		}
		statusCode := http.StatusOK

		if deps.DB != nil {
			body["database"] = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				body["database"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		if deps.Redis != nil {
			body["redis"] = "connected"
			if !cache.Healthy(ctx, deps.Redis) {
				body["redis"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		if statusCode != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(statusCode, body)
	}
}
