// Package stripe implements the payment gateway on Stripe Checkout and Billing.
package stripe

import (
	"context"
	"errors"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/config"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

var _ subscription.PaymentGateway = (*Gateway)(nil)

var ErrNotConfigured = errors.New("stripe is not configured")

type Gateway struct {
	api    *client.API
	cfg    config.StripeConfig
	logger logger.Interface
}

func NewGateway(cfg config.StripeConfig, log logger.Interface) *Gateway {
	g := &Gateway{cfg: cfg, logger: log}
	if cfg.SecretKey != "" {
		g.api = client.New(cfg.SecretKey, nil)
	}
	return g
}

func ownerMetadata(owner subscription.OwnerRef) map[string]string {
	return map[string]string{
		constants.MetadataAccountID:   owner.AccountID,
		constants.MetadataAccountKind: owner.AccountKind,
	}
}

func (g *Gateway) CreateCustomer(ctx context.Context, email, name string, owner subscription.OwnerRef) (string, error) {
	if g.api == nil {
		return "", ErrNotConfigured
	}
	params := &stripeapi.CustomerParams{
		Email: stripeapi.String(email),
		Name:  stripeapi.String(name),
	}
	params.Context = ctx
	for k, v := range ownerMetadata(owner) {
		params.AddMetadata(k, v)
	}

	c, err := g.api.Customers.New(params)
	if err != nil {
		g.logger.Errorw("stripe customer creation failed", "account_id", owner.AccountID, "error", err)
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return c.ID, nil
}

func (g *Gateway) checkoutParams(ctx context.Context, req subscription.CheckoutRequest) *stripeapi.CheckoutSessionParams {
	meta := ownerMetadata(req.Owner)
	meta[constants.MetadataPlanID] = req.PlanID

	params := &stripeapi.CheckoutSessionParams{
		Customer: stripeapi.String(req.CustomerID),
		Mode:     stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(req.PriceID),
				Quantity: stripeapi.Int64(1),
			},
		},
		SuccessURL:        stripeapi.String(g.cfg.SuccessURL),
		CancelURL:         stripeapi.String(g.cfg.CancelURL),
		ClientReferenceID: stripeapi.String(req.SubscriptionID),
		SubscriptionData: &stripeapi.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		},
	}
	params.Context = ctx
	for k, v := range meta {
		params.AddMetadata(k, v)
	}
	return params
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}
	s, err := g.api.CheckoutSessions.New(g.checkoutParams(ctx, req))
	if err != nil {
		g.logger.Errorw("stripe checkout session failed", "subscription_id", req.SubscriptionID, "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &subscription.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *Gateway) GetSubscription(ctx context.Context, externalID string) (*subscription.ProviderSubscription, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}
	params := &stripeapi.SubscriptionParams{}
	params.Context = ctx
	s, err := g.api.Subscriptions.Get(externalID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get stripe subscription: %w", err)
	}
	return toProviderSubscription(s), nil
}

// CancelSubscription schedules cancellation at period end, or cancels now.
func (g *Gateway) CancelSubscription(ctx context.Context, externalID string, atPeriodEnd bool) (*subscription.ProviderSubscription, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}

	var (
		s   *stripeapi.Subscription
		err error
	)
	if atPeriodEnd {
		params := &stripeapi.SubscriptionParams{CancelAtPeriodEnd: stripeapi.Bool(true)}
		params.Context = ctx
		s, err = g.api.Subscriptions.Update(externalID, params)
	} else {
		params := &stripeapi.SubscriptionCancelParams{}
		params.Context = ctx
		s, err = g.api.Subscriptions.Cancel(externalID, params)
	}
	if err != nil {
		g.logger.Errorw("stripe cancellation failed", "external_id", externalID, "at_period_end", atPeriodEnd, "error", err)
		return nil, fmt.Errorf("failed to cancel stripe subscription: %w", err)
	}
	return toProviderSubscription(s), nil
}

func toProviderSubscription(s *stripeapi.Subscription) *subscription.ProviderSubscription {
	ps := &subscription.ProviderSubscription{
		ID:                s.ID,
		Status:            subscription.StatusFromProvider(string(s.Status)),
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
	}
	if s.Customer != nil {
		ps.CustomerID = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 {
		ps.PeriodStart = biztime.FromUnix(s.Items.Data[0].CurrentPeriodStart)
		ps.PeriodEnd = biztime.FromUnix(s.Items.Data[0].CurrentPeriodEnd)
	}
	return ps
}
