package usecases

import (
	"context"
	"fmt"

	subscriptionUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type RegisterAccountCommand struct {
	Role     account.Role
	Email    string
	Name     string
	Password string
	PlanID   string
}

type RegisterAccountResult struct {
	Account      *account.Account
	Subscription *subscription.Subscription
	// CheckoutURL is empty for free plans or when the provider was unreachable.
	CheckoutURL string
}

// RegisterAccountUseCase signs up a parentless ADMIN or TRAINER on a plan.
type RegisterAccountUseCase struct {
	accountRepo account.Repository
	ledger      SubscriptionLedger
	checkout    CheckoutStarter
	hasher      PasswordHasher
	txRunner    db.TxRunner
	notifier    Notifier
	logger      logger.Interface
}

func NewRegisterAccountUseCase(
	accountRepo account.Repository,
	ledger SubscriptionLedger,
	checkout CheckoutStarter,
	hasher PasswordHasher,
	txRunner db.TxRunner,
	notifier Notifier,
	logger logger.Interface,
) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accountRepo: accountRepo,
		ledger:      ledger,
		checkout:    checkout,
		hasher:      hasher,
		txRunner:    txRunner,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountCommand) (*RegisterAccountResult, error) {
	if !cmd.Role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(cmd.Role))
	}
	if !account.IsBillable(cmd.Role) {
		return nil, errors.NewUnsupportedOperationError(fmt.Sprintf("%s accounts cannot self-register", cmd.Role))
	}
	if cmd.Password == "" {
		return nil, errors.NewValidationError("password is required")
	}
	if cmd.PlanID == "" {
		return nil, errors.NewValidationError("plan_id is required")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError("invalid password", err.Error())
	}
	created, err := account.NewAccount(cmd.Role, cmd.Email, cmd.Name, hash, "")
	if err != nil {
		return nil, err
	}

	var sub *subscription.Subscription
	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.accountRepo.Create(txCtx, created); err != nil {
			return err
		}
		s, err := uc.ledger.Create(txCtx, created.Role, created.ID, cmd.PlanID, "")
		if err != nil {
			return err
		}
		sub = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &RegisterAccountResult{Account: created, Subscription: sub}

	if sub.Status == subscription.StatusInactive {
		checkout, err := uc.checkout.Execute(ctx, subscriptionUsecases.CreateCheckoutCommand{
			OwnerKind: created.Role,
			OwnerID:   created.ID,
			Email:     created.Email,
			Name:      created.Name,
		})
		if err != nil {
			// the subscription stays INACTIVE; checkout can be retried later
			uc.logger.Warnw("checkout not started at registration", "id", created.ID, "error", err)
		} else {
			result.CheckoutURL = checkout.CheckoutURL
		}
	}

	if err := uc.notifier.SendWelcomeEmail(created.Email, created.Name, string(created.Role), ""); err != nil {
		uc.logger.Warnw("failed to send welcome email", "id", created.ID, "error", err)
	}

	uc.logger.Infow("account registered", "id", created.ID, "role", created.Role, "plan_id", cmd.PlanID, "subscription_status", sub.Status)
	return result, nil
}
