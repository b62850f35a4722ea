package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/infrastructure/permission"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
)

type DashboardRouteConfig struct {
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDashboardRoutes(engine *gin.Engine, cfg *DashboardRouteConfig) {
	dashboard := engine.Group("/dashboard")
	dashboard.Use(cfg.AuthMiddleware.RequireAuth())
	{
		dashboard.GET("/stats",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceDashboard, permission.ActionRead),
			cfg.DashboardHandler.GetStats,
		)
	}
}
