package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	apperrors "github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

func TestCreateCheckout(t *testing.T) {
	pro := testPlan(t, subscription.TierPro, 2900, nil)
	free := testPlan(t, subscription.TierFree, 0, nil)

	tests := []struct {
		name        string
		sub         *subscription.Subscription
		plan        *subscription.Plan
		customerErr error
		wantErr     apperrors.ErrorType
		wantNewCust bool
	}{
		{"creates customer then session", &subscription.Subscription{ID: "sub_1", PlanID: pro.ID, Status: subscription.StatusInactive}, pro, nil, "", true},
		{"reuses customer", &subscription.Subscription{ID: "sub_1", PlanID: pro.ID, Status: subscription.StatusInactive, ExternalCustomerID: "cus_old"}, pro, nil, "", false},
		{"no subscription", nil, pro, nil, apperrors.ErrorTypeNotFound, false},
		{"already active", &subscription.Subscription{ID: "sub_1", PlanID: pro.ID, Status: subscription.StatusActive}, pro, nil, apperrors.ErrorTypeConflict, false},
		{"free plan", &subscription.Subscription{ID: "sub_1", PlanID: free.ID, Status: subscription.StatusInactive}, free, nil, apperrors.ErrorTypeValidation, false},
		{"provider down", &subscription.Subscription{ID: "sub_1", PlanID: pro.ID, Status: subscription.StatusInactive}, pro, errors.New("timeout"), apperrors.ErrorTypeExternalService, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &mockSubscriptionRepository{GetCurrentFunc: func(ctx context.Context, kind account.Role, id string) (*subscription.Subscription, error) {
				return tt.sub, nil
			}}
			plans := &mockPlanRepository{GetByIDFunc: func(ctx context.Context, id string) (*subscription.Plan, error) { return tt.plan, nil }}
			var req subscription.CheckoutRequest
			gateway := &mockGateway{
				CreateCustomerFunc: func(ctx context.Context, email, name string, owner subscription.OwnerRef) (string, error) {
					if tt.customerErr != nil {
						return "", tt.customerErr
					}
					return "cus_new", nil
				},
				CreateCheckoutSessionFunc: func(ctx context.Context, r subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
					req = r
					return &subscription.CheckoutSession{ID: "cs_1", URL: "https://pay.test/cs_1"}, nil
				},
			}
			uc := NewCreateCheckoutUseCase(subs, plans, gateway, logger.NewNop())

			res, err := uc.Execute(context.Background(), CreateCheckoutCommand{OwnerKind: account.RoleTrainer, OwnerID: "trn_1", Email: "t@x.com", Name: "T"})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://pay.test/cs_1", res.CheckoutURL)
			assert.Equal(t, pro.ExternalPriceID, req.PriceID)
			assert.Equal(t, "sub_1", req.SubscriptionID)
			assert.Equal(t, "TRAINER", req.Owner.AccountKind)
			if tt.wantNewCust {
				assert.Equal(t, "cus_new", req.CustomerID)
				assert.Equal(t, 1, subs.updates)
			} else {
				assert.Equal(t, "cus_old", req.CustomerID)
				assert.Equal(t, 0, subs.updates)
			}
		})
	}
}

func TestCancelSubscription(t *testing.T) {
	t.Run("at period end through provider", func(t *testing.T) {
		sub := &subscription.Subscription{ID: "sub_1", Status: subscription.StatusActive, ExternalSubscriptionID: "sub_ext"}
		subs := &mockSubscriptionRepository{GetCurrentFunc: func(ctx context.Context, kind account.Role, id string) (*subscription.Subscription, error) { return sub, nil }}
		var gotAtEnd bool
		gateway := &mockGateway{CancelSubscriptionFunc: func(ctx context.Context, ext string, atEnd bool) (*subscription.ProviderSubscription, error) {
			gotAtEnd = atEnd
			return &subscription.ProviderSubscription{ID: ext, Status: subscription.StatusActive, CancelAtPeriodEnd: true}, nil
		}}

		got, err := NewCancelSubscriptionUseCase(subs, gateway, logger.NewNop()).Execute(context.Background(),
			CancelSubscriptionCommand{OwnerKind: account.RoleAdmin, OwnerID: "adm_1", AtPeriodEnd: true})
		require.NoError(t, err)
		assert.True(t, gotAtEnd)
		assert.True(t, got.CancelAtPeriodEnd)
		assert.Equal(t, subscription.StatusActive, got.Status)
	})

	t.Run("immediately without provider", func(t *testing.T) {
		sub := &subscription.Subscription{ID: "sub_1", Status: subscription.StatusActive}
		subs := &mockSubscriptionRepository{GetCurrentFunc: func(ctx context.Context, kind account.Role, id string) (*subscription.Subscription, error) { return sub, nil }}
		gateway := &mockGateway{CancelSubscriptionFunc: func(ctx context.Context, ext string, atEnd bool) (*subscription.ProviderSubscription, error) {
			t.Fatal("provider must not be called for local subscriptions")
			return nil, nil
		}}

		got, err := NewCancelSubscriptionUseCase(subs, gateway, logger.NewNop()).Execute(context.Background(),
			CancelSubscriptionCommand{OwnerKind: account.RoleTrainer, OwnerID: "trn_1"})
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusCanceled, got.Status)
	})

	t.Run("provider failure", func(t *testing.T) {
		sub := &subscription.Subscription{ID: "sub_1", Status: subscription.StatusActive, ExternalSubscriptionID: "sub_ext"}
		subs := &mockSubscriptionRepository{GetCurrentFunc: func(ctx context.Context, kind account.Role, id string) (*subscription.Subscription, error) { return sub, nil }}
		gateway := &mockGateway{CancelSubscriptionFunc: func(ctx context.Context, ext string, atEnd bool) (*subscription.ProviderSubscription, error) {
			return nil, errors.New("503")
		}}

		_, err := NewCancelSubscriptionUseCase(subs, gateway, logger.NewNop()).Execute(context.Background(),
			CancelSubscriptionCommand{OwnerKind: account.RoleTrainer, OwnerID: "trn_1"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternalService))
		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.Equal(t, 0, subs.updates)
	})
}
