package http

import (
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/routes"
)

// SetupRoutes configures the global middleware chain and all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Recovery(c.log.Named("http.recovery")))
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.ErrorHandler(c.log.Named("http.error")))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler: c.hdlrs.authHandler,
		RateLimiter: c.rateLimiter,
	})

	routes.SetupPlanRoutes(c.engine, &routes.PlanRouteConfig{
		PlanHandler:          c.hdlrs.planHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupAccountRoutes(c.engine, &routes.AccountRouteConfig{
		AccountHandler:       c.hdlrs.accountHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupSubscriptionRoutes(c.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  c.hdlrs.subscriptionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupDashboardRoutes(c.engine, &routes.DashboardRouteConfig{
		DashboardHandler:     c.hdlrs.dashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupWebhookRoutes(c.engine, &routes.WebhookRouteConfig{
		WebhookHandler: c.hdlrs.webhookHandler,
	})
}
