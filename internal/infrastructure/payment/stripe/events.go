package stripe

import (
	"encoding/json"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
)

var eventTypes = map[string]subscription.EventType{
	"checkout.session.completed":    subscription.EventCheckoutCompleted,
	"invoice.paid":                  subscription.EventInvoicePaid,
	"invoice.payment_succeeded":     subscription.EventInvoicePaid,
	"invoice.payment_failed":        subscription.EventInvoiceFailed,
	"customer.subscription.updated": subscription.EventSubscriptionUpdated,
	"customer.subscription.deleted": subscription.EventSubscriptionDeleted,
}

func customerID(c *stripeapi.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func subscriptionID(sub *stripeapi.Subscription) string {
	if sub == nil {
		return ""
	}
	return sub.ID
}

func ownerFrom(meta map[string]string) subscription.OwnerRef {
	return subscription.OwnerRef{
		AccountID:   meta[constants.MetadataAccountID],
		AccountKind: meta[constants.MetadataAccountKind],
	}
}

// ParseEvent verifies the Stripe-Signature header and decodes the events the ledger handles.
func (g *Gateway) ParseEvent(payload []byte, signature string) (*subscription.BillingEvent, error) {
	if g.cfg.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("invalid webhook signature: %w", err)
	}

	out := &subscription.BillingEvent{
		ID:           event.ID,
		ProviderType: string(event.Type),
		Type:         subscription.EventIgnored,
	}
	kind, ok := eventTypes[string(event.Type)]
	if !ok || event.Data == nil {
		return out, nil
	}
	out.Type = kind

	switch kind {
	case subscription.EventCheckoutCompleted:
		err = decodeCheckout(event.Data.Raw, out)
	case subscription.EventInvoicePaid, subscription.EventInvoiceFailed:
		err = decodeInvoice(event.Data.Raw, out)
	case subscription.EventSubscriptionUpdated, subscription.EventSubscriptionDeleted:
		err = decodeSubscription(event.Data.Raw, out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", event.Type, err)
	}
	return out, nil
}

func decodeCheckout(raw json.RawMessage, out *subscription.BillingEvent) error {
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return err
	}
	out.ExternalSubscriptionID = subscriptionID(session.Subscription)
	out.ExternalCustomerID = customerID(session.Customer)
	out.Owner = ownerFrom(session.Metadata)
	out.Status = subscription.StatusActive
	return nil
}

func decodeInvoice(raw json.RawMessage, out *subscription.BillingEvent) error {
	var inv stripeapi.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return err
	}

	out.Owner = ownerFrom(inv.Metadata)
	if inv.Parent != nil && inv.Parent.SubscriptionDetails != nil {
		details := inv.Parent.SubscriptionDetails
		out.ExternalSubscriptionID = subscriptionID(details.Subscription)
		if owner := ownerFrom(details.Metadata); owner.AccountID != "" {
			out.Owner = owner
		}
	}
	out.ExternalCustomerID = customerID(inv.Customer)
	out.Currency = string(inv.Currency)
	if inv.Lines != nil && len(inv.Lines.Data) > 0 && inv.Lines.Data[0].Period != nil {
		out.PeriodStart = biztime.FromUnix(inv.Lines.Data[0].Period.Start)
		out.PeriodEnd = biztime.FromUnix(inv.Lines.Data[0].Period.End)
	}

	if out.Type == subscription.EventInvoicePaid {
		out.ExternalPaymentID = inv.ID
		out.Amount = inv.AmountPaid
		if inv.StatusTransitions != nil {
			out.PaidAt = biztime.FromUnix(inv.StatusTransitions.PaidAt)
		}
		if out.PaidAt.IsZero() {
			out.PaidAt = biztime.FromUnix(inv.Created)
		}
		out.Status = subscription.StatusActive
		return nil
	}

	// One invoice can fail several times and still be paid later, so each
	// attempt gets its own payment id.
	out.ExternalPaymentID = fmt.Sprintf("%s:attempt:%d", inv.ID, inv.AttemptCount)
	out.Amount = inv.AmountDue
	out.FailureReason = fmt.Sprintf("invoice payment failed (attempt %d)", inv.AttemptCount)
	out.Status = subscription.StatusPastDue
	return nil
}

func decodeSubscription(raw json.RawMessage, out *subscription.BillingEvent) error {
	var sub stripeapi.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return err
	}
	out.ExternalSubscriptionID = sub.ID
	out.ExternalCustomerID = customerID(sub.Customer)
	out.Owner = ownerFrom(sub.Metadata)
	out.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
	out.Status = subscription.StatusFromProvider(string(sub.Status))
	if out.Type == subscription.EventSubscriptionDeleted {
		out.Status = subscription.StatusCanceled
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		out.PeriodStart = biztime.FromUnix(item.CurrentPeriodStart)
		out.PeriodEnd = biztime.FromUnix(item.CurrentPeriodEnd)
	}
	return nil
}
