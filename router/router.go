// Package router wires the HTTP surface of the intake service.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nivela-brasil/intake-backend/config"
	apperrors "github.com/nivela-brasil/intake-backend/errors"
	"github.com/nivela-brasil/intake-backend/handlers"
	"github.com/nivela-brasil/intake-backend/middleware"
)

// Dependencies carries everything the router needs. RedisClient is nil when
// rate limiting is disabled.
type Dependencies struct {
	Config             *config.Config
	LeadHandler        *handlers.LeadHandler
	DistributorHandler *handlers.DistributorHandler
	HealthHandler      *handlers.HealthHandler
	RedisClient        *redis.Client
}

// SetupRouter builds the gin engine with the full middleware chain and all
// routes registered.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if len(deps.Config.Server.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(deps.Config.Server.TrustedProxies)
	} else {
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	// A wrong method on a known route is answered explicitly instead of 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(apperrors.MethodNotAllowed(c.Request.Method))
	})

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.GetHealth)

		intake := api.Group("")
		if deps.RedisClient != nil {
			intake.Use(middleware.IntakeRateLimiter(
				deps.RedisClient,
				deps.Config.RateLimit.RequestsPerMinute,
				time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
			))
		}
		intake.POST("/leads", deps.LeadHandler.CreateLead)
		intake.POST("/distribuidores", deps.DistributorHandler.CreateDistributor)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
