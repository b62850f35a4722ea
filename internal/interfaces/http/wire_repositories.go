package http

import (
	"github.com/dietdesk/dietdesk/internal/infrastructure/repository"
	"github.com/dietdesk/dietdesk/internal/shared/db"
)

// repositories holds all repository instances used by the application.
// Concrete types are kept because several use cases need methods beyond the
// domain interfaces (counts, purges).
type repositories struct {
	accountRepo      *repository.AccountRepository
	subscriptionRepo *repository.SubscriptionRepository
	planRepo         *repository.PlanRepository
	paymentRepo      *repository.PaymentRepository
	txManager        *db.TransactionManager
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		accountRepo:      repository.NewAccountRepository(c.db, c.log.Named("repository.account")),
		subscriptionRepo: repository.NewSubscriptionRepository(c.db, c.log.Named("repository.subscription")),
		planRepo:         repository.NewPlanRepository(c.db, c.log.Named("repository.plan")),
		paymentRepo:      repository.NewPaymentRepository(c.db, c.log.Named("repository.payment")),
		txManager:        db.NewTransactionManager(c.db),
	}
}
