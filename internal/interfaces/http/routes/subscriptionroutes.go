package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/infrastructure/permission"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for the caller's own subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	perm := cfg.PermissionMiddleware
	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		read := perm.RequirePermission(permission.ResourceSubscriptions, permission.ActionRead)
		subscriptions.GET("/current", read, cfg.SubscriptionHandler.GetCurrent)
		subscriptions.GET("/capacity", read, cfg.SubscriptionHandler.GetCapacity)

		manage := perm.RequirePermission(permission.ResourceSubscriptions, permission.ActionManage)
		subscriptions.POST("/checkout", manage, cfg.SubscriptionHandler.Checkout)
		subscriptions.POST("/cancel", manage, cfg.SubscriptionHandler.Cancel)
	}
}
