package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type CreateCheckoutCommand struct {
	OwnerKind account.Role
	OwnerID   string
	Email     string
	Name      string
}

type CreateCheckoutResult struct {
	SubscriptionID string `json:"subscription_id"`
	SessionID      string `json:"session_id"`
	CheckoutURL    string `json:"checkout_url"`
}

// CreateCheckoutUseCase opens a hosted checkout for the owner's pending paid subscription.
type CreateCheckoutUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	gateway          subscription.PaymentGateway
	logger           logger.Interface
}

func NewCreateCheckoutUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	gateway subscription.PaymentGateway,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	sub, err := uc.subscriptionRepo.GetCurrent(ctx, cmd.OwnerKind, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("no subscription to pay for")
	}
	if sub.Status != subscription.StatusInactive {
		return nil, errors.NewConflictError("subscription does not await payment", string(sub.Status))
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", sub.PlanID)
	}
	if plan.IsFree() {
		return nil, errors.NewValidationError("free plans need no checkout")
	}

	owner := subscription.OwnerRef{AccountID: cmd.OwnerID, AccountKind: string(cmd.OwnerKind)}

	if sub.ExternalCustomerID == "" {
		customerID, err := uc.gateway.CreateCustomer(ctx, cmd.Email, cmd.Name, owner)
		if err != nil {
			uc.logger.Errorw("failed to create billing customer", "owner_id", cmd.OwnerID, "error", err)
			return nil, errors.NewExternalServiceError("payment provider")
		}
		sub.ExternalCustomerID = customerID
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return nil, err
		}
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, subscription.CheckoutRequest{
		CustomerID:     sub.ExternalCustomerID,
		PriceID:        plan.ExternalPriceID,
		SubscriptionID: sub.ID,
		Owner:          owner,
		PlanID:         plan.ID,
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "subscription_id", sub.ID, "error", err)
		return nil, errors.NewExternalServiceError("payment provider")
	}

	uc.logger.Infow("checkout session created", "subscription_id", sub.ID, "session_id", session.ID)
	return &CreateCheckoutResult{
		SubscriptionID: sub.ID,
		SessionID:      session.ID,
		CheckoutURL:    session.URL,
	}, nil
}
