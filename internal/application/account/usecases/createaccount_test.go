package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

func TestCreateAccount(t *testing.T) {
	tr := newTree()

	tests := []struct {
		name       string
		cmd        CreateAccountCommand
		capacity   subscription.Capacity
		wantType   errors.ErrorType
		wantReason string
		wantParent string
	}{
		{
			name:       "admin creates trainer under itself",
			cmd:        CreateAccountCommand{Actor: tr.admin.Principal(), Role: account.RoleTrainer, Email: "new@x.com", Name: "New"},
			wantParent: "adm_one",
		},
		{
			name:       "super admin creates admin under itself",
			cmd:        CreateAccountCommand{Actor: tr.super.Principal(), Role: account.RoleAdmin, Email: "a@x.com", Name: "A"},
			wantParent: "sa_root",
		},
		{
			name:       "super admin creates customer for a named trainer",
			cmd:        CreateAccountCommand{Actor: tr.super.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C", ParentID: "trn_one"},
			capacity:   subscription.Capacity{Allowed: true, Subscribed: true},
			wantParent: "trn_one",
		},
		{
			name:     "super admin must name the trainer",
			cmd:      CreateAccountCommand{Actor: tr.super.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C"},
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "named parent must exist",
			cmd:      CreateAccountCommand{Actor: tr.super.Principal(), Role: account.RoleTrainer, Email: "t@x.com", Name: "T", ParentID: "adm_missing"},
			wantType: errors.ErrorTypeNotFound,
		},
		{
			name:       "admin cannot create customers",
			cmd:        CreateAccountCommand{Actor: tr.admin.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C"},
			wantType:   errors.ErrorTypeInsufficientPermissions,
			wantReason: account.ReasonCreateNotPermitted,
		},
		{
			name:     "trainer cannot attach customer to another trainer",
			cmd:      CreateAccountCommand{Actor: tr.trainer.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C", ParentID: "trn_two"},
			capacity: subscription.Capacity{Allowed: true},
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "trainer at capacity",
			cmd:      CreateAccountCommand{Actor: tr.trainer.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C"},
			capacity: subscription.Capacity{Allowed: false, Subscribed: true},
			wantType: errors.ErrorTypeCapacityExceeded,
		},
		{
			name:     "plans only for billable kinds",
			cmd:      CreateAccountCommand{Actor: tr.trainer.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C", PlanID: "plan_free"},
			wantType: errors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tr.repo()
			var stored *account.Account
			repo.CreateFunc = func(ctx context.Context, a *account.Account) error {
				stored = a
				return nil
			}
			var capacityOwners []string
			ledger := &mockLedger{
				CheckCustomerCapacityFunc: func(ctx context.Context, kind account.Role, ownerID string) (subscription.Capacity, error) {
					capacityOwners = append(capacityOwners, ownerID)
					return tt.capacity, nil
				},
			}
			notifier := &mockNotifier{}
			uc := NewCreateAccountUseCase(repo, ledger, plainHasher{}, fixedPassword, notifier, logger.NewNop())

			result, err := uc.Execute(context.Background(), tt.cmd)

			if tt.wantType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, errors.ReasonOf(err))
				}
				assert.Nil(t, stored)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, tt.wantParent, result.Account.ParentID)
			assert.Equal(t, tt.cmd.Role, stored.Role)
			if tt.cmd.Role == account.RoleCustomer {
				require.NotEmpty(t, capacityOwners)
				assert.Equal(t, tt.wantParent, capacityOwners[0])
			}
		})
	}
}

func TestCreateAccount_CustomerCapacityFollowsHierarchy(t *testing.T) {
	tr := newTree()
	unlimited := subscription.Capacity{Allowed: true, Subscribed: true}
	full := subscription.Capacity{Allowed: false, Subscribed: true}
	none := subscription.Capacity{}

	tests := []struct {
		name     string
		trainer  subscription.Capacity
		admin    subscription.Capacity
		wantType errors.ErrorType
	}{
		{"both plans have room", unlimited, unlimited, ""},
		{"admin plan is used up", unlimited, full, errors.ErrorTypeCapacityExceeded},
		{"trainer plan is used up", full, unlimited, errors.ErrorTypeCapacityExceeded},
		{"plan-less trainer uses admin plan", none, unlimited, ""},
		{"plan-less trainer under full admin", none, full, errors.ErrorTypeCapacityExceeded},
		{"admin without plan is skipped", unlimited, none, ""},
		{"no plan anywhere", none, none, errors.ErrorTypeCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var asked []account.Role
			ledger := &mockLedger{
				CheckCustomerCapacityFunc: func(ctx context.Context, kind account.Role, ownerID string) (subscription.Capacity, error) {
					asked = append(asked, kind)
					if kind == account.RoleAdmin {
						assert.Equal(t, "adm_one", ownerID)
						return tt.admin, nil
					}
					assert.Equal(t, "trn_one", ownerID)
					return tt.trainer, nil
				},
			}
			uc := NewCreateAccountUseCase(tr.repo(), ledger, plainHasher{}, fixedPassword, &mockNotifier{}, logger.NewNop())

			_, err := uc.Execute(context.Background(), CreateAccountCommand{
				Actor: tr.trainer.Principal(), Role: account.RoleCustomer, Email: "c@x.com", Name: "C",
			})

			if tt.wantType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []account.Role{account.RoleTrainer, account.RoleAdmin}, asked)
		})
	}
}

func TestCreateAccount_GeneratesPasswordAndSendsWelcome(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	notifier := &mockNotifier{}
	uc := NewCreateAccountUseCase(repo, &mockLedger{}, plainHasher{}, fixedPassword, notifier, logger.NewNop())

	result, err := uc.Execute(context.Background(), CreateAccountCommand{
		Actor: tr.admin.Principal(),
		Role:  account.RoleTrainer,
		Email: "  Coach@Example.COM ",
		Name:  "Coach",
	})
	require.NoError(t, err)

	assert.Equal(t, "Temp0rary-Pass", result.TemporaryPassword)
	assert.Equal(t, "hash:Temp0rary-Pass", result.Account.PasswordHash)
	assert.Equal(t, "coach@example.com", result.Account.Email)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "welcome", notifier.sent[0].kind)
	assert.Equal(t, "Temp0rary-Pass", notifier.sent[0].password)
}

func TestCreateAccount_EmailFailureDoesNotFail(t *testing.T) {
	tr := newTree()
	notifier := &mockNotifier{err: assert.AnError}
	uc := NewCreateAccountUseCase(tr.repo(), &mockLedger{}, plainHasher{}, fixedPassword, notifier, logger.NewNop())

	result, err := uc.Execute(context.Background(), CreateAccountCommand{
		Actor:    tr.admin.Principal(),
		Role:     account.RoleTrainer,
		Email:    "t@x.com",
		Name:     "T",
		Password: "chosen-password",
	})
	require.NoError(t, err)
	assert.Empty(t, result.TemporaryPassword)
	assert.Equal(t, "hash:chosen-password", result.Account.PasswordHash)
}

func TestCreateAccount_InactiveActorDenied(t *testing.T) {
	tr := newTree()
	tr.admin.Status = account.StatusSuspended
	uc := NewCreateAccountUseCase(tr.repo(), &mockLedger{}, plainHasher{}, fixedPassword, &mockNotifier{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateAccountCommand{
		Actor: account.Principal{ID: tr.admin.ID, Role: account.RoleAdmin, Status: account.StatusActive},
		Role:  account.RoleTrainer,
		Email: "t@x.com",
		Name:  "T",
	})
	require.Error(t, err)
	assert.Equal(t, account.ReasonActorNotActive, errors.ReasonOf(err))
}

func TestCreateAccount_AttachesPlan(t *testing.T) {
	tr := newTree()
	var planFor string
	ledger := &mockLedger{
		CreateFunc: func(ctx context.Context, kind account.Role, ownerID, planID, extCustomerID string) (*subscription.Subscription, error) {
			planFor = ownerID + "/" + planID
			return &subscription.Subscription{ID: "sub_1"}, nil
		},
	}
	uc := NewCreateAccountUseCase(tr.repo(), ledger, plainHasher{}, fixedPassword, &mockNotifier{}, logger.NewNop())

	result, err := uc.Execute(context.Background(), CreateAccountCommand{
		Actor:  tr.admin.Principal(),
		Role:   account.RoleTrainer,
		Email:  "t@x.com",
		Name:   "T",
		PlanID: "plan_free",
	})
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID+"/plan_free", planFor)
}
