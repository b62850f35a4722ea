package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type HandleBillingEventCommand struct {
	Payload   []byte
	Signature string
}

type HandleBillingEventResult struct {
	EventID string
	Type    subscription.EventType
	Handled bool
}

// HandleBillingEventUseCase applies verified payment-provider webhooks to the ledger.
type HandleBillingEventUseCase struct {
	ledger           *LedgerService
	subscriptionRepo subscription.Repository
	gateway          subscription.PaymentGateway
	logger           logger.Interface
}

func NewHandleBillingEventUseCase(
	ledger *LedgerService,
	subscriptionRepo subscription.Repository,
	gateway subscription.PaymentGateway,
	logger logger.Interface,
) *HandleBillingEventUseCase {
	return &HandleBillingEventUseCase{
		ledger:           ledger,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *HandleBillingEventUseCase) Execute(ctx context.Context, cmd HandleBillingEventCommand) (*HandleBillingEventResult, error) {
	ev, err := uc.gateway.ParseEvent(cmd.Payload, cmd.Signature)
	if err != nil {
		uc.logger.Warnw("rejected billing webhook", "error", err)
		return nil, errors.NewBadRequestError("invalid webhook payload or signature")
	}

	result := &HandleBillingEventResult{EventID: ev.ID, Type: ev.Type, Handled: true}
	log := uc.logger.With("event_id", ev.ID, "event_type", ev.ProviderType)

	switch ev.Type {
	case subscription.EventCheckoutCompleted:
		err = uc.onCheckoutCompleted(ctx, ev)
	case subscription.EventInvoicePaid:
		err = uc.onInvoicePaid(ctx, ev)
	case subscription.EventInvoiceFailed:
		err = uc.onInvoiceFailed(ctx, ev)
	case subscription.EventSubscriptionUpdated:
		result.Handled, err = uc.onSubscriptionUpdated(ctx, ev)
	case subscription.EventSubscriptionDeleted:
		result.Handled, err = uc.onSubscriptionDeleted(ctx, ev)
	default:
		log.Debugw("billing event ignored")
		result.Handled = false
		return result, nil
	}
	if err != nil {
		log.Errorw("failed to handle billing event", "error", err)
		return nil, err
	}

	log.Infow("billing event handled", "handled", result.Handled)
	return result, nil
}

func (uc *HandleBillingEventUseCase) onCheckoutCompleted(ctx context.Context, ev *subscription.BillingEvent) error {
	if ev.ExternalSubscriptionID == "" {
		return errors.NewValidationError("checkout session carries no subscription")
	}

	start, end := ev.PeriodStart, ev.PeriodEnd
	if start.IsZero() || end.IsZero() {
		// checkout sessions carry no period; ask the provider
		ps, err := uc.gateway.GetSubscription(ctx, ev.ExternalSubscriptionID)
		if err != nil {
			uc.logger.Warnw("could not fetch provider subscription period",
				"external_subscription_id", ev.ExternalSubscriptionID, "error", err)
		} else {
			start, end = ps.PeriodStart, ps.PeriodEnd
		}
	}

	_, err := uc.ledger.Activate(ctx, ActivateCommand{
		ExternalSubscriptionID: ev.ExternalSubscriptionID,
		PeriodStart:            start,
		PeriodEnd:              end,
		Owner:                  ev.Owner,
	})
	return err
}

func (uc *HandleBillingEventUseCase) onInvoicePaid(ctx context.Context, ev *subscription.BillingEvent) error {
	if ev.ExternalSubscriptionID == "" {
		uc.logger.Infow("invoice without subscription ignored", "external_payment_id", ev.ExternalPaymentID)
		return nil
	}

	sub, err := uc.ledger.Activate(ctx, ActivateCommand{
		ExternalSubscriptionID: ev.ExternalSubscriptionID,
		PeriodStart:            ev.PeriodStart,
		PeriodEnd:              ev.PeriodEnd,
		Owner:                  ev.Owner,
	})
	if err != nil {
		return err
	}

	paidAt := ev.PaidAt
	if paidAt.IsZero() {
		paidAt = biztime.NowUTC()
	}
	_, err = uc.ledger.RecordPayment(ctx, RecordPaymentCommand{
		SubscriptionID:    sub.ID,
		Amount:            ev.Amount,
		Currency:          ev.Currency,
		ExternalPaymentID: ev.ExternalPaymentID,
		PaidAt:            paidAt,
	})
	return err
}

func (uc *HandleBillingEventUseCase) onInvoiceFailed(ctx context.Context, ev *subscription.BillingEvent) error {
	sub, err := uc.subscriptionRepo.GetByExternalID(ctx, ev.ExternalSubscriptionID)
	if err != nil {
		return err
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", ev.ExternalSubscriptionID)
	}

	_, err = uc.ledger.RecordFailedPayment(ctx, RecordFailedPaymentCommand{
		SubscriptionID:    sub.ID,
		Amount:            ev.Amount,
		Currency:          ev.Currency,
		ExternalPaymentID: ev.ExternalPaymentID,
		FailureReason:     ev.FailureReason,
	})
	return err
}

// onSubscriptionUpdated syncs status and period. Updates for subscriptions
// we have not linked yet are acknowledged and skipped.
func (uc *HandleBillingEventUseCase) onSubscriptionUpdated(ctx context.Context, ev *subscription.BillingEvent) (bool, error) {
	sub, err := uc.subscriptionRepo.GetByExternalID(ctx, ev.ExternalSubscriptionID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		uc.logger.Infow("update for unknown subscription skipped", "external_subscription_id", ev.ExternalSubscriptionID)
		return false, nil
	}

	if !sub.SyncFromProvider(ev.Status, ev.PeriodStart, ev.PeriodEnd, ev.CancelAtPeriodEnd, biztime.NowUTC()) {
		return true, nil
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return false, err
	}
	uc.logger.Infow("subscription synced",
		"subscription_id", sub.ID,
		"status", sub.Status,
		"cancel_at_period_end", sub.CancelAtPeriodEnd,
	)
	return true, nil
}

func (uc *HandleBillingEventUseCase) onSubscriptionDeleted(ctx context.Context, ev *subscription.BillingEvent) (bool, error) {
	sub, err := uc.subscriptionRepo.GetByExternalID(ctx, ev.ExternalSubscriptionID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		uc.logger.Infow("cancellation for unknown subscription skipped", "external_subscription_id", ev.ExternalSubscriptionID)
		return false, nil
	}

	if !sub.Cancel(biztime.NowUTC()) {
		return true, nil
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return false, err
	}
	uc.logger.Infow("subscription canceled", "subscription_id", sub.ID)
	return true, nil
}
