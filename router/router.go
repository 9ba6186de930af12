// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/policyguard/api/controller"
	"github.com/policyguard/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	// Registration and login stay open; everything else needs a token.
	controllers.Auth.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	controllers.Policy.RegisterRoutes(protected)
	controllers.Rule.RegisterRoutes(protected)
	controllers.Employee.RegisterRoutes(protected)
	controllers.Violation.RegisterRoutes(protected)
	controllers.Scan.RegisterRoutes(protected)
	controllers.Audit.RegisterRoutes(protected)

	return router
}
