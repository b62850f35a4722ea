package usecases

import (
	"context"
	"fmt"
	"strings"

	subscriptionUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
)

type mockAccountRepository struct {
	CreateFunc         func(ctx context.Context, a *account.Account) error
	FindByEmailFunc    func(ctx context.Context, email string) (*account.Account, error)
	FindByIDFunc       func(ctx context.Context, role account.Role, id string) (*account.Account, error)
	UpdateFunc         func(ctx context.Context, role account.Role, id string, patch account.Patch) (*account.Account, error)
	UpdatePasswordFunc func(ctx context.Context, role account.Role, id string, hash string) error
	CountChildrenFunc  func(ctx context.Context, role account.Role, id string) (int64, error)
	CountCustomersFunc func(ctx context.Context, role account.Role, id string) (int64, error)
	DeleteFunc         func(ctx context.Context, role account.Role, id string) error
	ListFunc           func(ctx context.Context, filter account.ListFilter) ([]*account.Account, int64, error)
	CountByRoleFunc    func(ctx context.Context, role account.Role, scope account.Scope) (int64, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindByID(ctx context.Context, role account.Role, id string) (*account.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, role, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) Update(ctx context.Context, role account.Role, id string, patch account.Patch) (*account.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, role, id, patch)
	}
	return nil, nil
}

func (m *mockAccountRepository) UpdatePassword(ctx context.Context, role account.Role, id string, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, role, id, hash)
	}
	return nil
}

func (m *mockAccountRepository) CountChildren(ctx context.Context, role account.Role, id string) (int64, error) {
	if m.CountChildrenFunc != nil {
		return m.CountChildrenFunc(ctx, role, id)
	}
	return 0, nil
}

func (m *mockAccountRepository) CountCustomers(ctx context.Context, role account.Role, id string) (int64, error) {
	if m.CountCustomersFunc != nil {
		return m.CountCustomersFunc(ctx, role, id)
	}
	return 0, nil
}

func (m *mockAccountRepository) Delete(ctx context.Context, role account.Role, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, role, id)
	}
	return nil
}

func (m *mockAccountRepository) List(ctx context.Context, filter account.ListFilter) ([]*account.Account, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAccountRepository) CountByRole(ctx context.Context, role account.Role, scope account.Scope) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role, scope)
	}
	return 0, nil
}

// withAccounts serves FindByID and FindByEmail from a fixed set of accounts.
func (m *mockAccountRepository) withAccounts(accounts ...*account.Account) *mockAccountRepository {
	byKey := make(map[string]*account.Account, len(accounts))
	for _, a := range accounts {
		byKey[string(a.Role)+"/"+a.ID] = a
	}
	m.FindByIDFunc = func(ctx context.Context, role account.Role, id string) (*account.Account, error) {
		return byKey[string(role)+"/"+id], nil
	}
	m.FindByEmailFunc = func(ctx context.Context, email string) (*account.Account, error) {
		for _, a := range accounts {
			if strings.EqualFold(a.Email, email) {
				return a, nil
			}
		}
		return nil, nil
	}
	return m
}

type mockLedger struct {
	CreateFunc                func(ctx context.Context, kind account.Role, ownerID, planID, extCustomerID string) (*subscription.Subscription, error)
	CheckCustomerCapacityFunc func(ctx context.Context, kind account.Role, ownerID string) (subscription.Capacity, error)
}

func (m *mockLedger) Create(ctx context.Context, kind account.Role, ownerID, planID, extCustomerID string) (*subscription.Subscription, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, kind, ownerID, planID, extCustomerID)
	}
	return &subscription.Subscription{ID: "sub_1", OwnerKind: kind, OwnerID: ownerID, PlanID: planID, Status: subscription.StatusActive}, nil
}

func (m *mockLedger) CheckCustomerCapacity(ctx context.Context, kind account.Role, ownerID string) (subscription.Capacity, error) {
	if m.CheckCustomerCapacityFunc != nil {
		return m.CheckCustomerCapacityFunc(ctx, kind, ownerID)
	}
	return subscription.Capacity{Allowed: true, Subscribed: true}, nil
}

type mockCheckout struct {
	ExecuteFunc func(ctx context.Context, cmd subscriptionUsecases.CreateCheckoutCommand) (*subscriptionUsecases.CreateCheckoutResult, error)
}

func (m *mockCheckout) Execute(ctx context.Context, cmd subscriptionUsecases.CreateCheckoutCommand) (*subscriptionUsecases.CreateCheckoutResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &subscriptionUsecases.CreateCheckoutResult{SessionID: "cs_1", CheckoutURL: "https://checkout.example/cs_1"}, nil
}

// plainHasher "hashes" by prefixing, so tests can assert on the stored value.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", fmt.Errorf("password too long")
	}
	return "hash:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if hash != "hash:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc           func(id auth.Identity) (*auth.TokenPair, error)
	GenerateAccessOnlyFunc func(id auth.Identity) (*auth.TokenPair, error)
	RefreshFunc            func(token string) (*auth.Claims, *auth.TokenPair, error)
}

func (m *mockTokenIssuer) Generate(id auth.Identity) (*auth.TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(id)
	}
	return &auth.TokenPair{AccessToken: "access:" + id.AccountID, RefreshToken: "refresh:" + id.AccountID, ExpiresIn: 900}, nil
}

func (m *mockTokenIssuer) GenerateAccessOnly(id auth.Identity) (*auth.TokenPair, error) {
	if m.GenerateAccessOnlyFunc != nil {
		return m.GenerateAccessOnlyFunc(id)
	}
	return &auth.TokenPair{AccessToken: "access:" + id.AccountID + ":by:" + id.ImpersonatorID, ExpiresIn: 900}, nil
}

func (m *mockTokenIssuer) Refresh(token string) (*auth.Claims, *auth.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(token)
	}
	return nil, nil, fmt.Errorf("invalid refresh token")
}

type sentEmail struct {
	kind     string
	to       string
	password string
}

type mockNotifier struct {
	sent []sentEmail
	err  error
}

func (m *mockNotifier) SendWelcomeEmail(to, name, role, temporaryPassword string) error {
	m.sent = append(m.sent, sentEmail{kind: "welcome", to: to, password: temporaryPassword})
	return m.err
}

func (m *mockNotifier) SendPasswordResetEmail(to, name, temporaryPassword string) error {
	m.sent = append(m.sent, sentEmail{kind: "reset", to: to, password: temporaryPassword})
	return m.err
}

type mockLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, error)
	resets    []string
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	return true, nil
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	m.resets = append(m.resets, key)
	return nil
}

type mockBilling struct {
	ListIDsByOwnerFunc func(ctx context.Context, kind account.Role, ownerID string) ([]string, error)
	DeleteByOwnerFunc  func(ctx context.Context, kind account.Role, ownerID string) (int64, error)
}

func (m *mockBilling) ListIDsByOwner(ctx context.Context, kind account.Role, ownerID string) ([]string, error) {
	if m.ListIDsByOwnerFunc != nil {
		return m.ListIDsByOwnerFunc(ctx, kind, ownerID)
	}
	return nil, nil
}

func (m *mockBilling) DeleteByOwner(ctx context.Context, kind account.Role, ownerID string) (int64, error) {
	if m.DeleteByOwnerFunc != nil {
		return m.DeleteByOwnerFunc(ctx, kind, ownerID)
	}
	return 0, nil
}

type mockPayments struct {
	DeleteBySubscriptionIDsFunc func(ctx context.Context, ids []string) (int64, error)
}

func (m *mockPayments) DeleteBySubscriptionIDs(ctx context.Context, ids []string) (int64, error) {
	if m.DeleteBySubscriptionIDsFunc != nil {
		return m.DeleteBySubscriptionIDsFunc(ctx, ids)
	}
	return 0, nil
}

// recordingTx runs fn inline and remembers whether it failed.
type recordingTx struct {
	calls      int
	rolledBack bool
}

func (r *recordingTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	err := fn(ctx)
	if err != nil {
		r.rolledBack = true
	}
	return err
}

func fixedPassword() (string, error) {
	return "Temp0rary-Pass", nil
}
