package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/payment"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	apperrors "github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type billingFixture struct {
	subs     *mockSubscriptionRepository
	payments *mockPaymentRepository
	gateway  *mockGateway
	stored   map[string]*subscription.Subscription
	recorded []*payment.Payment
}

// newBillingFixture keys subscriptions by external id in a map so lookups
// see the effect of earlier updates.
func newBillingFixture(initial ...*subscription.Subscription) *billingFixture {
	f := &billingFixture{stored: map[string]*subscription.Subscription{}}
	for _, s := range initial {
		f.stored[s.ExternalSubscriptionID] = s
	}
	f.subs = &mockSubscriptionRepository{
		GetByExternalIDFunc: func(ctx context.Context, ext string) (*subscription.Subscription, error) {
			return f.stored[ext], nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*subscription.Subscription, error) {
			for _, s := range f.stored {
				if s.ID == id {
					return s, nil
				}
			}
			return nil, nil
		},
		GetLatestInactiveFunc: func(ctx context.Context, kind account.Role, id string) (*subscription.Subscription, error) {
			for _, s := range f.stored {
				if s.OwnerID == id && s.OwnerKind == kind && s.Status == subscription.StatusInactive {
					return s, nil
				}
			}
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			for k, v := range f.stored {
				if v == s {
					delete(f.stored, k)
				}
			}
			f.stored[s.ExternalSubscriptionID] = s
			return nil
		},
	}
	f.payments = &mockPaymentRepository{CreateFunc: func(ctx context.Context, p *payment.Payment) error {
		for _, existing := range f.recorded {
			if existing.ExternalPaymentID == p.ExternalPaymentID {
				return payment.ErrDuplicateExternalID
			}
		}
		f.recorded = append(f.recorded, p)
		return nil
	}}
	f.payments.GetByExternalIDFunc = func(ctx context.Context, ext string) (*payment.Payment, error) {
		for _, p := range f.recorded {
			if p.ExternalPaymentID == ext {
				return p, nil
			}
		}
		return nil, nil
	}
	f.gateway = &mockGateway{}
	return f
}

func (f *billingFixture) useCase() *HandleBillingEventUseCase {
	ledger := NewLedgerService(f.subs, &mockPlanRepository{}, f.payments, &mockCustomerCounter{}, 30, logger.NewNop())
	return NewHandleBillingEventUseCase(ledger, f.subs, f.gateway, logger.NewNop())
}

func (f *billingFixture) emit(ev *subscription.BillingEvent) {
	f.gateway.ParseEventFunc = func(payload []byte, signature string) (*subscription.BillingEvent, error) {
		return ev, nil
	}
}

var (
	periodStart = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

func TestHandleBillingEvent_InvalidSignature(t *testing.T) {
	f := newBillingFixture()
	f.gateway.ParseEventFunc = func(payload []byte, signature string) (*subscription.BillingEvent, error) {
		return nil, errors.New("bad signature")
	}

	_, err := f.useCase().Execute(context.Background(), HandleBillingEventCommand{Payload: []byte("{}"), Signature: "x"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
}

func TestHandleBillingEvent_CheckoutThenInvoice(t *testing.T) {
	pending := &subscription.Subscription{ID: "sub_1", OwnerKind: account.RoleTrainer, OwnerID: "trn_1", Status: subscription.StatusInactive}
	f := newBillingFixture(pending)
	f.gateway.GetSubscriptionFunc = func(ctx context.Context, ext string) (*subscription.ProviderSubscription, error) {
		return &subscription.ProviderSubscription{ID: ext, PeriodStart: periodStart, PeriodEnd: periodEnd}, nil
	}
	uc := f.useCase()
	owner := subscription.OwnerRef{AccountID: "trn_1", AccountKind: "TRAINER"}

	f.emit(&subscription.BillingEvent{ID: "evt_1", Type: subscription.EventCheckoutCompleted, ExternalSubscriptionID: "sub_ext", Owner: owner})
	res, err := uc.Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Equal(t, subscription.StatusActive, pending.Status)
	assert.Equal(t, periodEnd, pending.CurrentPeriodEnd)

	invoice := &subscription.BillingEvent{
		ID: "evt_2", Type: subscription.EventInvoicePaid, ExternalSubscriptionID: "sub_ext",
		ExternalPaymentID: "in_1", Amount: 900, Currency: "eur",
		PeriodStart: periodStart, PeriodEnd: periodEnd, PaidAt: periodStart,
	}
	f.emit(invoice)
	_, err = uc.Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)

	// replayed webhook records nothing new
	_, err = uc.Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)

	require.Len(t, f.recorded, 1)
	assert.Equal(t, "sub_1", f.recorded[0].SubscriptionID)
	assert.Equal(t, payment.StatusCompleted, f.recorded[0].Status)
}

func TestHandleBillingEvent_InvoiceFailed(t *testing.T) {
	active := &subscription.Subscription{ID: "sub_1", Status: subscription.StatusActive, ExternalSubscriptionID: "sub_ext"}
	f := newBillingFixture(active)
	f.emit(&subscription.BillingEvent{
		Type: subscription.EventInvoiceFailed, ExternalSubscriptionID: "sub_ext",
		ExternalPaymentID: "in_9:attempt:1", Amount: 900, Currency: "eur", FailureReason: "declined",
	})

	_, err := f.useCase().Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPastDue, active.Status)
	require.Len(t, f.recorded, 1)
	assert.Equal(t, payment.StatusFailed, f.recorded[0].Status)
}

func TestHandleBillingEvent_InvoiceFailedUnknownSubscription(t *testing.T) {
	f := newBillingFixture()
	f.emit(&subscription.BillingEvent{Type: subscription.EventInvoiceFailed, ExternalSubscriptionID: "sub_ghost", ExternalPaymentID: "in_1:attempt:1"})

	_, err := f.useCase().Execute(context.Background(), HandleBillingEventCommand{})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestHandleBillingEvent_SubscriptionUpdatedAndDeleted(t *testing.T) {
	active := &subscription.Subscription{ID: "sub_1", Status: subscription.StatusActive, ExternalSubscriptionID: "sub_ext"}
	f := newBillingFixture(active)
	uc := f.useCase()

	f.emit(&subscription.BillingEvent{
		Type: subscription.EventSubscriptionUpdated, ExternalSubscriptionID: "sub_ext",
		Status: subscription.StatusActive, PeriodStart: periodStart, PeriodEnd: periodEnd, CancelAtPeriodEnd: true,
	})
	_, err := uc.Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.True(t, active.CancelAtPeriodEnd)
	assert.Equal(t, periodEnd, active.CurrentPeriodEnd)

	f.emit(&subscription.BillingEvent{Type: subscription.EventSubscriptionDeleted, ExternalSubscriptionID: "sub_ext", Status: subscription.StatusCanceled})
	_, err = uc.Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCanceled, active.Status)
	assert.False(t, active.CancelAtPeriodEnd)
}

func TestHandleBillingEvent_UnknownSubscriptionUpdateIsSkipped(t *testing.T) {
	f := newBillingFixture()
	f.emit(&subscription.BillingEvent{Type: subscription.EventSubscriptionUpdated, ExternalSubscriptionID: "sub_ghost"})

	res, err := f.useCase().Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.False(t, res.Handled)
}

func TestHandleBillingEvent_IgnoredType(t *testing.T) {
	f := newBillingFixture()
	f.emit(&subscription.BillingEvent{ID: "evt_x", Type: subscription.EventIgnored, ProviderType: "customer.created"})

	res, err := f.useCase().Execute(context.Background(), HandleBillingEventCommand{})
	require.NoError(t, err)
	assert.False(t, res.Handled)
	assert.Equal(t, "evt_x", res.EventID)
}
