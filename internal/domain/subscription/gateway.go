package subscription

import (
	"context"
	"time"
)

// EventType is a billing event we react to; anything else is EventIgnored.
type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout_completed"
	EventInvoicePaid         EventType = "invoice_paid"
	EventInvoiceFailed       EventType = "invoice_failed"
	EventSubscriptionUpdated EventType = "subscription_updated"
	EventSubscriptionDeleted EventType = "subscription_deleted"
	EventIgnored             EventType = "ignored"
)

// OwnerRef identifies the account a provider object was created for.
type OwnerRef struct {
	AccountID   string
	AccountKind string
}

// BillingEvent is a verified provider event reduced to what the ledger needs.
type BillingEvent struct {
	ID                     string
	Type                   EventType
	ProviderType           string
	ExternalSubscriptionID string
	ExternalCustomerID     string
	ExternalPaymentID      string
	Amount                 int64
	Currency               string
	PeriodStart            time.Time
	PeriodEnd              time.Time
	PaidAt                 time.Time
	Status                 Status
	CancelAtPeriodEnd      bool
	FailureReason          string
	Owner                  OwnerRef
}

// ProviderSubscription is the provider's view of a subscription.
type ProviderSubscription struct {
	ID                string
	CustomerID        string
	Status            Status
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
}

type CheckoutRequest struct {
	CustomerID     string
	PriceID        string
	SubscriptionID string
	Owner          OwnerRef
	PlanID         string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the outbound port to the payment processor.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email, name string, owner OwnerRef) (string, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetSubscription(ctx context.Context, externalID string) (*ProviderSubscription, error)
	CancelSubscription(ctx context.Context, externalID string, atPeriodEnd bool) (*ProviderSubscription, error)

	// ParseEvent verifies the signature and decodes the payload.
	ParseEvent(payload []byte, signature string) (*BillingEvent, error)
}
