package http

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	dashboardUsecases "github.com/dietdesk/dietdesk/internal/application/dashboard/usecases"
	subscriptionUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/infrastructure/cache"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Auth
	loginUC        *usecases.LoginUseCase
	refreshTokenUC *usecases.RefreshTokenUseCase
	registerUC     *usecases.RegisterAccountUseCase

	// Accounts
	createAccountUC *usecases.CreateAccountUseCase
	getAccountUC    *usecases.GetAccountUseCase
	listAccountsUC  *usecases.ListAccountsUseCase
	updateAccountUC *usecases.UpdateAccountUseCase
	lifecycle       *usecases.LifecycleService
	resetPasswordUC *usecases.ResetPasswordUseCase
	impersonateUC   *usecases.ImpersonateUseCase

	// Billing
	ledger          *subscriptionUsecases.LedgerService
	checkoutUC      *subscriptionUsecases.CreateCheckoutUseCase
	cancelUC        *subscriptionUsecases.CancelSubscriptionUseCase
	billingEventUC  *subscriptionUsecases.HandleBillingEventUseCase
	createPlanUC    *subscriptionUsecases.CreatePlanUseCase
	listPlansUC     *subscriptionUsecases.ListPlansUseCase
	planStatusUC    *subscriptionUsecases.UpdatePlanStatusUseCase

	// Dashboard
	getDashboardUC *dashboardUsecases.GetDashboardUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	ucs := &allUseCases{}
	currency := c.cfg.Billing.DefaultCurrency

	ucs.ledger = subscriptionUsecases.NewLedgerService(
		r.subscriptionRepo, r.planRepo, r.paymentRepo, r.accountRepo,
		c.cfg.Billing.FreePeriodDays, c.log.Named("usecase.ledger"),
	)
	ucs.checkoutUC = subscriptionUsecases.NewCreateCheckoutUseCase(r.subscriptionRepo, r.planRepo, c.gateway, c.log.Named("usecase.checkout"))
	ucs.cancelUC = subscriptionUsecases.NewCancelSubscriptionUseCase(r.subscriptionRepo, c.gateway, c.log.Named("usecase.cancel_subscription"))
	ucs.billingEventUC = subscriptionUsecases.NewHandleBillingEventUseCase(ucs.ledger, r.subscriptionRepo, c.gateway, c.log.Named("usecase.billing_event"))
	ucs.createPlanUC = subscriptionUsecases.NewCreatePlanUseCase(r.planRepo, currency, c.log.Named("usecase.create_plan"))
	ucs.listPlansUC = subscriptionUsecases.NewListPlansUseCase(r.planRepo, c.markdown, c.log.Named("usecase.list_plans"))
	ucs.planStatusUC = subscriptionUsecases.NewUpdatePlanStatusUseCase(r.planRepo, c.log.Named("usecase.plan_status"))

	ucs.loginUC = usecases.NewLoginUseCase(r.accountRepo, c.hasher, c.jwtSvc, c.loginLimiter, c.log.Named("usecase.login"))
	ucs.refreshTokenUC = usecases.NewRefreshTokenUseCase(r.accountRepo, c.jwtSvc, c.log.Named("usecase.refresh_token"))
	ucs.registerUC = usecases.NewRegisterAccountUseCase(
		r.accountRepo, ucs.ledger, ucs.checkoutUC, c.hasher, r.txManager, c.notifier, c.log.Named("usecase.register"),
	)

	ucs.createAccountUC = usecases.NewCreateAccountUseCase(
		r.accountRepo, ucs.ledger, c.hasher, auth.GenerateTemporary, c.notifier, c.log.Named("usecase.create_account"),
	)
	ucs.getAccountUC = usecases.NewGetAccountUseCase(r.accountRepo, c.log.Named("usecase.get_account"))
	ucs.listAccountsUC = usecases.NewListAccountsUseCase(r.accountRepo, c.log.Named("usecase.list_accounts"))
	ucs.updateAccountUC = usecases.NewUpdateAccountUseCase(r.accountRepo, c.log.Named("usecase.update_account"))
	ucs.lifecycle = usecases.NewLifecycleService(r.accountRepo, r.subscriptionRepo, r.paymentRepo, r.txManager, c.log.Named("usecase.lifecycle"))
	ucs.resetPasswordUC = usecases.NewResetPasswordUseCase(
		r.accountRepo, c.hasher, auth.GenerateTemporary, c.notifier, c.log.Named("usecase.reset_password"),
	)
	ucs.impersonateUC = usecases.NewImpersonateUseCase(r.accountRepo, c.jwtSvc, c.log.Named("usecase.impersonate"))

	// A nil *RedisJSONCache inside the interface would not compare equal to nil.
	var snapshots dashboardUsecases.SnapshotCache
	if c.redis != nil {
		ttl := time.Duration(c.cfg.Dashboard.CacheTTLSeconds) * time.Second
		snapshots = cache.NewRedisJSONCache(c.redis, "dietdesk:dashboard", ttl, c.log.Named("cache.dashboard"))
	}
	ucs.getDashboardUC = dashboardUsecases.NewGetDashboardUseCase(
		r.accountRepo, r.subscriptionRepo, r.paymentRepo, ucs.ledger, snapshots, c.log.Named("usecase.dashboard"),
	)

	c.ucs = ucs
}
