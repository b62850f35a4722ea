package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/infrastructure/permission"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	plans := engine.Group("/plans")
	{
		// Public catalog; a super admin token additionally unlocks include_inactive
		plans.GET("", cfg.AuthMiddleware.OptionalAuth(), cfg.PlanHandler.ListPlans)

		plansAdmin := plans.Group("")
		plansAdmin.Use(cfg.AuthMiddleware.RequireAuth())
		plansAdmin.Use(cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlans, permission.ActionManage))
		{
			plansAdmin.POST("", cfg.PlanHandler.CreatePlan)
			plansAdmin.PATCH("/:id/status", cfg.PlanHandler.UpdatePlanStatus)
		}
	}
}
