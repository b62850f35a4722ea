package usecases

import (
	"context"
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/payment"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
)

type mockSubscriptionRepository struct {
	CreateFunc            func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc           func(ctx context.Context, id string) (*subscription.Subscription, error)
	GetCurrentFunc        func(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error)
	GetByExternalIDFunc   func(ctx context.Context, externalID string) (*subscription.Subscription, error)
	GetLatestInactiveFunc func(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error)
	UpdateFunc            func(ctx context.Context, sub *subscription.Subscription) error
	ListIDsByOwnerFunc    func(ctx context.Context, ownerKind account.Role, ownerID string) ([]string, error)
	DeleteByOwnerFunc     func(ctx context.Context, ownerKind account.Role, ownerID string) (int64, error)
	CountByStatusFunc     func(ctx context.Context) (map[subscription.Status]int64, error)

	updates int
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetCurrent(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	if m.GetCurrentFunc != nil {
		return m.GetCurrentFunc(ctx, ownerKind, ownerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByExternalID(ctx context.Context, externalID string) (*subscription.Subscription, error) {
	if m.GetByExternalIDFunc != nil {
		return m.GetByExternalIDFunc(ctx, externalID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetLatestInactive(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	if m.GetLatestInactiveFunc != nil {
		return m.GetLatestInactiveFunc(ctx, ownerKind, ownerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	m.updates++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListIDsByOwner(ctx context.Context, ownerKind account.Role, ownerID string) ([]string, error) {
	if m.ListIDsByOwnerFunc != nil {
		return m.ListIDsByOwnerFunc(ctx, ownerKind, ownerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) DeleteByOwner(ctx context.Context, ownerKind account.Role, ownerID string) (int64, error) {
	if m.DeleteByOwnerFunc != nil {
		return m.DeleteByOwnerFunc(ctx, ownerKind, ownerID)
	}
	return 0, nil
}

func (m *mockSubscriptionRepository) CountByStatus(ctx context.Context) (map[subscription.Status]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[subscription.Status]int64{}, nil
}

type mockPlanRepository struct {
	CreateFunc    func(ctx context.Context, plan *subscription.Plan) error
	GetByIDFunc   func(ctx context.Context, id string) (*subscription.Plan, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*subscription.Plan, error)
	ListFunc      func(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error)
	UpdateFunc    func(ctx context.Context, plan *subscription.Plan) error
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetBySlug(ctx context.Context, slug string) (*subscription.Plan, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *subscription.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

type mockPaymentRepository struct {
	CreateFunc                  func(ctx context.Context, p *payment.Payment) error
	GetByExternalIDFunc         func(ctx context.Context, externalID string) (*payment.Payment, error)
	ListBySubscriptionFunc      func(ctx context.Context, subscriptionID string) ([]*payment.Payment, error)
	DeleteBySubscriptionIDsFunc func(ctx context.Context, ids []string) (int64, error)
	SumCompletedSinceFunc       func(ctx context.Context, since time.Time) (map[string]int64, error)
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	if m.GetByExternalIDFunc != nil {
		return m.GetByExternalIDFunc(ctx, externalID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*payment.Payment, error) {
	if m.ListBySubscriptionFunc != nil {
		return m.ListBySubscriptionFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) DeleteBySubscriptionIDs(ctx context.Context, ids []string) (int64, error) {
	if m.DeleteBySubscriptionIDsFunc != nil {
		return m.DeleteBySubscriptionIDsFunc(ctx, ids)
	}
	return 0, nil
}

func (m *mockPaymentRepository) SumCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	if m.SumCompletedSinceFunc != nil {
		return m.SumCompletedSinceFunc(ctx, since)
	}
	return map[string]int64{}, nil
}

type mockCustomerCounter struct {
	CountCustomersFunc func(ctx context.Context, role account.Role, id string) (int64, error)
}

func (m *mockCustomerCounter) CountCustomers(ctx context.Context, role account.Role, id string) (int64, error) {
	if m.CountCustomersFunc != nil {
		return m.CountCustomersFunc(ctx, role, id)
	}
	return 0, nil
}

type mockGateway struct {
	CreateCustomerFunc        func(ctx context.Context, email, name string, owner subscription.OwnerRef) (string, error)
	CreateCheckoutSessionFunc func(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error)
	GetSubscriptionFunc       func(ctx context.Context, externalID string) (*subscription.ProviderSubscription, error)
	CancelSubscriptionFunc    func(ctx context.Context, externalID string, atPeriodEnd bool) (*subscription.ProviderSubscription, error)
	ParseEventFunc            func(payload []byte, signature string) (*subscription.BillingEvent, error)
}

func (m *mockGateway) CreateCustomer(ctx context.Context, email, name string, owner subscription.OwnerRef) (string, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, email, name, owner)
	}
	return "cus_provider", nil
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, req)
	}
	return &subscription.CheckoutSession{ID: "cs_1", URL: "https://checkout.test/cs_1"}, nil
}

func (m *mockGateway) GetSubscription(ctx context.Context, externalID string) (*subscription.ProviderSubscription, error) {
	if m.GetSubscriptionFunc != nil {
		return m.GetSubscriptionFunc(ctx, externalID)
	}
	return &subscription.ProviderSubscription{ID: externalID}, nil
}

func (m *mockGateway) CancelSubscription(ctx context.Context, externalID string, atPeriodEnd bool) (*subscription.ProviderSubscription, error) {
	if m.CancelSubscriptionFunc != nil {
		return m.CancelSubscriptionFunc(ctx, externalID, atPeriodEnd)
	}
	return &subscription.ProviderSubscription{ID: externalID, Status: subscription.StatusActive, CancelAtPeriodEnd: atPeriodEnd}, nil
}

func (m *mockGateway) ParseEvent(payload []byte, signature string) (*subscription.BillingEvent, error) {
	if m.ParseEventFunc != nil {
		return m.ParseEventFunc(payload, signature)
	}
	return &subscription.BillingEvent{Type: subscription.EventIgnored}, nil
}

type mockRenderer struct {
	RenderFunc func(source string) (string, error)
}

func (m *mockRenderer) Render(source string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(source)
	}
	return "<p>" + source + "</p>", nil
}
