package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-wellness/docs"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
	"github.com/comitanigiacomo/kanso-wellness/internal/metrics"
)

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	StatsHandler     *StatsHandler
	HabitHandler     *HabitHandler
	TaskHandler      *TaskHandler
	BookHandler      *BookHandler
	AnalyticsHandler *AnalyticsHandler
	InsightHandler   *InsightHandler
	ProfileHandler   *ProfileHandler

	Store       Pinger
	Redis       *redis.Client
	Metrics     *metrics.Metrics
	Logger      *log.Logger
	StartTime   time.Time
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", middleware.RequestIDHeader}
	if len(deps.CORSOrigins) == 0 || (len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Redis != nil {
		limit := deps.RateLimit
		if limit <= 0 {
			limit = 100
		}
		window := deps.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, limit, window, logger))
	}

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if deps.Store != nil {
			if err := deps.Store.Ping(c.Request.Context()); err != nil {
				storeStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		status, statusCode := "ok", http.StatusOK
		if storeStatus == "unreachable" || redisStatus == "unreachable" {
			status, statusCode = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status": status,
			"store":  storeStatus,
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(apiV1)
	}
	if deps.HabitHandler != nil {
		deps.HabitHandler.RegisterRoutes(apiV1)
	}
	if deps.TaskHandler != nil {
		deps.TaskHandler.RegisterRoutes(apiV1)
	}
	if deps.BookHandler != nil {
		deps.BookHandler.RegisterRoutes(apiV1)
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterRoutes(apiV1)
	}
	if deps.InsightHandler != nil {
		deps.InsightHandler.RegisterRoutes(apiV1)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(apiV1)
	}

	return router
}
