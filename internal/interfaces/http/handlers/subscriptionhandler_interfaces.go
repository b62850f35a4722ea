package handlers

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
)

// Use case interfaces for SubscriptionHandler

type subscriptionLedger interface {
	Current(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error)
	CheckCustomerCapacity(ctx context.Context, ownerKind account.Role, ownerID string) (subscription.Capacity, error)
}

type createCheckoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCheckoutCommand) (*usecases.CreateCheckoutResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*subscription.Subscription, error)
}
