package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	OwnerKind   account.Role
	OwnerID     string
	AtPeriodEnd bool
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	gateway          subscription.PaymentGateway
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	gateway subscription.PaymentGateway,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetCurrent(ctx, cmd.OwnerKind, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("no subscription to cancel")
	}
	if sub.Status == subscription.StatusCanceled {
		return sub, nil
	}

	now := biztime.NowUTC()
	if sub.ExternalSubscriptionID != "" {
		ps, err := uc.gateway.CancelSubscription(ctx, sub.ExternalSubscriptionID, cmd.AtPeriodEnd)
		if err != nil {
			uc.logger.Errorw("provider cancellation failed", "subscription_id", sub.ID, "error", err)
			return nil, errors.NewExternalServiceError("payment provider")
		}
		if cmd.AtPeriodEnd {
			sub.SyncFromProvider(ps.Status, ps.PeriodStart, ps.PeriodEnd, true, now)
		} else {
			sub.Cancel(now)
		}
	} else if cmd.AtPeriodEnd {
		sub.CancelAtPeriodEnd = true
		sub.UpdatedAt = now
	} else {
		sub.Cancel(now)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	uc.logger.Infow("subscription cancellation requested",
		"subscription_id", sub.ID,
		"at_period_end", cmd.AtPeriodEnd,
		"status", sub.Status,
	)
	return sub, nil
}
