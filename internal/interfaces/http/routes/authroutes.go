package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures the public authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
		auth.POST("/register", cfg.RateLimiter.Limit(), cfg.AuthHandler.Register)
	}
}
