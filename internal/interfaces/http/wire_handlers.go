package http

import (
	"github.com/dietdesk/dietdesk/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	accountHandler      *handlers.AccountHandler
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	dashboardHandler    *handlers.DashboardHandler
	webhookHandler      *handlers.WebhookHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) initHandlers() error {
	ucs := c.ucs

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(ucs.loginUC, ucs.refreshTokenUC, ucs.registerUC, c.log.Named("handler.auth")),
		accountHandler: handlers.NewAccountHandler(
			ucs.createAccountUC,
			ucs.getAccountUC,
			ucs.listAccountsUC,
			ucs.updateAccountUC,
			ucs.lifecycle,
			ucs.resetPasswordUC,
			ucs.impersonateUC,
			c.log.Named("handler.account"),
		),
		planHandler:         handlers.NewPlanHandler(ucs.createPlanUC, ucs.listPlansUC, ucs.planStatusUC, c.log.Named("handler.plan")),
		subscriptionHandler: handlers.NewSubscriptionHandler(ucs.ledger, ucs.checkoutUC, ucs.cancelUC, ucs.getAccountUC, c.log.Named("handler.subscription")),
		dashboardHandler:    handlers.NewDashboardHandler(ucs.getDashboardUC, c.log.Named("handler.dashboard")),
		webhookHandler:      handlers.NewWebhookHandler(ucs.billingEventUC, c.log.Named("handler.webhook")),
		healthHandler:       handlers.NewHealthHandler(sqlDB, c.log.Named("handler.health")),
	}
	return nil
}
