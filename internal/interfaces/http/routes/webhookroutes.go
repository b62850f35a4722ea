package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
)

// WebhookRouteConfig holds dependencies for payment provider callbacks.
type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupWebhookRoutes registers provider callbacks. They carry no bearer token;
// the handler verifies the provider signature instead.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.Stripe)
	}
}
