package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/infrastructure/permission"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
)

// AccountRouteConfig holds dependencies for account management routes.
type AccountRouteConfig struct {
	AccountHandler       *handlers.AccountHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAccountRoutes configures account management routes. The casbin gate
// only checks the caller's kind; hierarchy checks happen in the use cases.
func SetupAccountRoutes(engine *gin.Engine, cfg *AccountRouteConfig) {
	perm := cfg.PermissionMiddleware
	accounts := engine.Group("/accounts")
	accounts.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		accounts.POST("", perm.RequirePermission(permission.ResourceAccounts, permission.ActionCreate), cfg.AccountHandler.Create)
		accounts.GET("", perm.RequirePermission(permission.ResourceAccounts, permission.ActionRead), cfg.AccountHandler.List)
		accounts.POST("/bulk", perm.RequirePermission(permission.ResourceAccounts, permission.ActionManage), cfg.AccountHandler.Bulk)

		account := accounts.Group("/:kind/:id")
		{
			account.GET("", perm.RequirePermission(permission.ResourceAccounts, permission.ActionRead), cfg.AccountHandler.Get)
			account.PATCH("", perm.RequirePermission(permission.ResourceAccounts, permission.ActionUpdate), cfg.AccountHandler.Update)
			account.DELETE("", perm.RequirePermission(permission.ResourceAccounts, permission.ActionDelete), cfg.AccountHandler.Delete)

			manage := perm.RequirePermission(permission.ResourceAccounts, permission.ActionManage)
			account.POST("/suspend", manage, cfg.AccountHandler.Suspend)
			account.POST("/activate", manage, cfg.AccountHandler.Activate)
			account.POST("/reset-password", manage, cfg.AccountHandler.ResetPassword)

			account.POST("/impersonate", perm.RequirePermission(permission.ResourceAccounts, permission.ActionImpersonate), cfg.AccountHandler.Impersonate)
		}
	}
}
