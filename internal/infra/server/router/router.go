// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/backoffice/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	dashboardController *controller.DashboardController
	quarterController   *controller.QuarterController
	recordController    *controller.RecordController
	authMiddleware      *middleware.AuthMiddleware
	loginRateLimit      gin.HandlerFunc
	closeRateLimit      gin.HandlerFunc
}

// Controllers groups the HTTP controllers served by the router.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	Dashboard *controller.DashboardController
	Quarter   *controller.QuarterController
	Record    *controller.RecordController
}

// NewRouter creates a new router instance with all dependencies.
// Nil rate limit handlers disable limiting on their routes.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginRateLimit gin.HandlerFunc,
	closeRateLimit gin.HandlerFunc,
) *Router {
	if loginRateLimit == nil {
		loginRateLimit = middleware.Disabled()
	}
	if closeRateLimit == nil {
		closeRateLimit = middleware.Disabled()
	}
	return &Router{
		healthController:    controllers.Health,
		authController:      controllers.Auth,
		dashboardController: controllers.Dashboard,
		quarterController:   controllers.Quarter,
		recordController:    controllers.Record,
		authMiddleware:      authMiddleware,
		loginRateLimit:      loginRateLimit,
		closeRateLimit:      closeRateLimit,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.loginRateLimit, r.authController.Register)
			auth.POST("/login", r.loginRateLimit, r.authController.Login)
		}

		// Everything below requires a signed-in user
		authed := v1.Group("")
		authed.Use(r.authMiddleware.Authenticate())

		dashboard := authed.Group("/dashboard")
		{
			dashboard.GET("/stats", r.dashboardController.GetStats)
			dashboard.GET("/kpis", r.dashboardController.GetKPIs)
			dashboard.GET("/targets", r.dashboardController.GetTargets)
		}

		quarters := authed.Group("/quarters")
		{
			quarters.GET("/status", r.quarterController.Status)
			quarters.GET("/:id", r.quarterController.Get)

			owner := quarters.Group("")
			owner.Use(r.authMiddleware.RequireOwner())
			{
				owner.PUT("/:id/targets/:metric", r.quarterController.SetTarget)
				owner.POST("/:id/close", r.closeRateLimit, r.quarterController.Close)
				owner.POST("/:id/archive", r.quarterController.Archive)
			}
		}

		invoices := authed.Group("/invoices")
		{
			invoices.POST("", r.recordController.CreateInvoice)
			invoices.PATCH("/:id", r.recordController.UpdateInvoice)
			invoices.DELETE("/:id", r.recordController.DeleteInvoice)
		}

		expenses := authed.Group("/expenses")
		{
			expenses.POST("", r.recordController.CreateExpense)
			expenses.PATCH("/:id", r.recordController.UpdateExpense)
			expenses.DELETE("/:id", r.recordController.DeleteExpense)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
