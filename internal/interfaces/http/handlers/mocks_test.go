package handlers

import (
	"context"
	"time"

	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	subUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	result *usecases.LoginResult
	err    error
	got    usecases.LoginCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRefreshTokenUC struct {
	result *auth.TokenPair
	err    error
}

func (m *mockRefreshTokenUC) Execute(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	return m.result, m.err
}

type mockRegisterUC struct {
	result *usecases.RegisterAccountResult
	err    error
	got    usecases.RegisterAccountCommand
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterAccountCommand) (*usecases.RegisterAccountResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCreateAccountUC struct {
	result *usecases.CreateAccountResult
	err    error
	got    usecases.CreateAccountCommand
}

func (m *mockCreateAccountUC) Execute(ctx context.Context, cmd usecases.CreateAccountCommand) (*usecases.CreateAccountResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetAccountUC struct {
	executeFn func(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error)
}

func (m *mockGetAccountUC) Execute(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	return m.executeFn(ctx, actor, role, id)
}

type mockListAccountsUC struct {
	result *usecases.ListAccountsResult
	err    error
	got    usecases.ListAccountsQuery
}

func (m *mockListAccountsUC) Execute(ctx context.Context, query usecases.ListAccountsQuery) (*usecases.ListAccountsResult, error) {
	m.got = query
	return m.result, m.err
}

type mockUpdateAccountUC struct {
	result *account.Account
	err    error
	got    usecases.UpdateAccountCommand
}

func (m *mockUpdateAccountUC) Execute(ctx context.Context, cmd usecases.UpdateAccountCommand) (*account.Account, error) {
	m.got = cmd
	return m.result, m.err
}

type mockLifecycle struct {
	suspendFn  func(actor account.Principal, role account.Role, id string) (*account.Account, error)
	activateFn func(actor account.Principal, role account.Role, id string) (*account.Account, error)
	deleteFn   func(actor account.Principal, role account.Role, id string) error
	bulkFn     func(actor account.Principal, items []usecases.BulkItem) *dto.BulkResultDTO
}

func (m *mockLifecycle) Suspend(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	return m.suspendFn(actor, role, id)
}

func (m *mockLifecycle) Activate(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	return m.activateFn(actor, role, id)
}

func (m *mockLifecycle) Delete(ctx context.Context, actor account.Principal, role account.Role, id string) error {
	return m.deleteFn(actor, role, id)
}

func (m *mockLifecycle) Bulk(ctx context.Context, actor account.Principal, items []usecases.BulkItem) *dto.BulkResultDTO {
	return m.bulkFn(actor, items)
}

type mockResetPasswordUC struct {
	result *usecases.ResetPasswordResult
	err    error
	got    usecases.ResetPasswordCommand
}

func (m *mockResetPasswordUC) Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) (*usecases.ResetPasswordResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockImpersonateUC struct {
	result *usecases.ImpersonateResult
	err    error
	got    usecases.ImpersonateCommand
}

func (m *mockImpersonateUC) Execute(ctx context.Context, cmd usecases.ImpersonateCommand) (*usecases.ImpersonateResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCreatePlanUC struct {
	result *subscription.Plan
	err    error
	got    subUsecases.CreatePlanCommand
}

func (m *mockCreatePlanUC) Execute(ctx context.Context, cmd subUsecases.CreatePlanCommand) (*subscription.Plan, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListPlansUC struct {
	result     []*subdto.PlanDTO
	err        error
	activeOnly bool
}

func (m *mockListPlansUC) Execute(ctx context.Context, activeOnly bool) ([]*subdto.PlanDTO, error) {
	m.activeOnly = activeOnly
	return m.result, m.err
}

type mockUpdatePlanStatusUC struct {
	result *subscription.Plan
	err    error
	active bool
}

func (m *mockUpdatePlanStatusUC) Execute(ctx context.Context, planID string, active bool) (*subscription.Plan, error) {
	m.active = active
	return m.result, m.err
}

type mockSubscriptionLedger struct {
	current  *subscription.Subscription
	capacity subscription.Capacity
	err      error
}

func (m *mockSubscriptionLedger) Current(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	return m.current, m.err
}

func (m *mockSubscriptionLedger) CheckCustomerCapacity(ctx context.Context, ownerKind account.Role, ownerID string) (subscription.Capacity, error) {
	return m.capacity, m.err
}

type mockCheckoutUC struct {
	result *subUsecases.CreateCheckoutResult
	err    error
	got    subUsecases.CreateCheckoutCommand
}

func (m *mockCheckoutUC) Execute(ctx context.Context, cmd subUsecases.CreateCheckoutCommand) (*subUsecases.CreateCheckoutResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCancelUC struct {
	result *subscription.Subscription
	err    error
	got    subUsecases.CancelSubscriptionCommand
}

func (m *mockCancelUC) Execute(ctx context.Context, cmd subUsecases.CancelSubscriptionCommand) (*subscription.Subscription, error) {
	m.got = cmd
	return m.result, m.err
}

type mockBillingEventUC struct {
	result *subUsecases.HandleBillingEventResult
	err    error
	got    subUsecases.HandleBillingEventCommand
}

func (m *mockBillingEventUC) Execute(ctx context.Context, cmd subUsecases.HandleBillingEventCommand) (*subUsecases.HandleBillingEventResult, error) {
	m.got = cmd
	return m.result, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

func testAccount(role account.Role, id, parentID string) *account.Account {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &account.Account{
		ID:        id,
		Role:      role,
		Email:     id + "@example.com",
		Name:      "Account " + id,
		Status:    account.StatusActive,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
