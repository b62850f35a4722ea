package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

func newLifecycle(repo *mockAccountRepository, billing *mockBilling, payments *mockPayments, tx *recordingTx) *LifecycleService {
	return NewLifecycleService(repo, billing, payments, tx, logger.NewNop())
}

func TestSuspendActivate(t *testing.T) {
	tests := []struct {
		name       string
		actor      func(tree) *account.Account
		role       account.Role
		id         string
		suspend    bool
		wantType   errors.ErrorType
		wantReason string
		wantStatus account.Status
	}{
		{
			name:       "admin suspends own trainer",
			actor:      func(t tree) *account.Account { return t.admin },
			role:       account.RoleTrainer,
			id:         "trn_one",
			suspend:    true,
			wantStatus: account.StatusInactive,
		},
		{
			name:       "super admin reactivates admin",
			actor:      func(t tree) *account.Account { return t.super },
			role:       account.RoleAdmin,
			id:         "adm_two",
			wantStatus: account.StatusActive,
		},
		{
			name:       "admin outside hierarchy",
			actor:      func(t tree) *account.Account { return t.admin },
			role:       account.RoleTrainer,
			id:         "trn_two",
			suspend:    true,
			wantType:   errors.ErrorTypeInsufficientPermissions,
			wantReason: account.ReasonOutsideHierarchy,
		},
		{
			name:       "trainer cannot suspend admin",
			actor:      func(t tree) *account.Account { return t.trainer },
			role:       account.RoleAdmin,
			id:         "adm_one",
			suspend:    true,
			wantType:   errors.ErrorTypeInsufficientPermissions,
			wantReason: account.ReasonRankNotHigher,
		},
		{
			name:     "customers have no status",
			actor:    func(t tree) *account.Account { return t.super },
			role:     account.RoleCustomer,
			id:       "cus_one",
			suspend:  true,
			wantType: errors.ErrorTypeUnsupportedOperation,
		},
		{
			name:       "super admin cannot suspend a peer",
			actor:      func(t tree) *account.Account { return t.super },
			role:       account.RoleSuperAdmin,
			id:         "sa_peer",
			suspend:    true,
			wantType:   errors.ErrorTypeInsufficientPermissions,
			wantReason: account.ReasonPeerSuperAdmin,
		},
		{
			name:       "admin cannot activate a super admin",
			actor:      func(t tree) *account.Account { return t.admin },
			role:       account.RoleSuperAdmin,
			id:         "sa_root",
			wantType:   errors.ErrorTypeInsufficientPermissions,
			wantReason: account.ReasonStatusNotSettable,
		},
		{
			name:     "missing target",
			actor:    func(t tree) *account.Account { return t.super },
			role:     account.RoleAdmin,
			id:       "adm_gone",
			suspend:  true,
			wantType: errors.ErrorTypeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTree()
			repo := tr.repo()
			var patched *account.Patch
			repo.UpdateFunc = func(ctx context.Context, role account.Role, id string, patch account.Patch) (*account.Account, error) {
				patched = &patch
				a, _ := repo.FindByID(ctx, role, id)
				a.Status = *patch.Status
				return a, nil
			}
			svc := newLifecycle(repo, &mockBilling{}, &mockPayments{}, &recordingTx{})

			actor := tt.actor(tr).Principal()
			var (
				got *account.Account
				err error
			)
			if tt.suspend {
				got, err = svc.Suspend(context.Background(), actor, tt.role, tt.id)
			} else {
				got, err = svc.Activate(context.Background(), actor, tt.role, tt.id)
			}

			if tt.wantType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, errors.ReasonOf(err))
				}
				assert.Nil(t, patched)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, patched)
			assert.Equal(t, tt.wantStatus, got.EffectiveStatus())
		})
	}
}

func TestDelete_CascadesInOneTransaction(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	var order []string
	repo.CountChildrenFunc = func(ctx context.Context, role account.Role, id string) (int64, error) {
		order = append(order, "count")
		return 0, nil
	}
	repo.DeleteFunc = func(ctx context.Context, role account.Role, id string) error {
		order = append(order, "account")
		return nil
	}
	billing := &mockBilling{
		ListIDsByOwnerFunc: func(ctx context.Context, kind account.Role, ownerID string) ([]string, error) {
			return []string{"sub_a", "sub_b"}, nil
		},
		DeleteByOwnerFunc: func(ctx context.Context, kind account.Role, ownerID string) (int64, error) {
			order = append(order, "subscriptions")
			return 2, nil
		},
	}
	var purged []string
	payments := &mockPayments{
		DeleteBySubscriptionIDsFunc: func(ctx context.Context, ids []string) (int64, error) {
			purged = ids
			order = append(order, "payments")
			return 3, nil
		},
	}
	tx := &recordingTx{}
	svc := newLifecycle(repo, billing, payments, tx)

	err := svc.Delete(context.Background(), tr.admin.Principal(), account.RoleTrainer, "trn_one")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []string{"count", "payments", "subscriptions", "account"}, order)
	assert.Equal(t, []string{"sub_a", "sub_b"}, purged)
}

func TestDelete_HasDependents(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	repo.CountChildrenFunc = func(ctx context.Context, role account.Role, id string) (int64, error) {
		return 3, nil
	}
	deleted := false
	repo.DeleteFunc = func(ctx context.Context, role account.Role, id string) error {
		deleted = true
		return nil
	}
	svc := newLifecycle(repo, &mockBilling{}, &mockPayments{}, &recordingTx{})

	err := svc.Delete(context.Background(), tr.super.Principal(), account.RoleAdmin, "adm_one")
	require.Error(t, err)
	assert.True(t, errors.IsHasDependentsError(err))
	assert.Contains(t, err.Error(), "admin has 3 dependent trainer account(s)")
	assert.False(t, deleted)
}

func TestDelete_FailureRollsBack(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	repo.DeleteFunc = func(ctx context.Context, role account.Role, id string) error {
		return assert.AnError
	}
	billing := &mockBilling{
		ListIDsByOwnerFunc: func(ctx context.Context, kind account.Role, ownerID string) ([]string, error) {
			return []string{"sub_a"}, nil
		},
	}
	tx := &recordingTx{}
	svc := newLifecycle(repo, billing, &mockPayments{}, tx)

	err := svc.Delete(context.Background(), tr.admin.Principal(), account.RoleTrainer, "trn_one")
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, tx.rolledBack)
}

func TestDelete_ConcurrentDeleteIsNotFound(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	repo.DeleteFunc = func(ctx context.Context, role account.Role, id string) error {
		return errors.NewNotFoundError("account not found", id)
	}
	svc := newLifecycle(repo, &mockBilling{}, &mockPayments{}, &recordingTx{})

	err := svc.Delete(context.Background(), tr.trainer.Principal(), account.RoleCustomer, "cus_one")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDelete_CustomerSkipsBilling(t *testing.T) {
	tr := newTree()
	billing := &mockBilling{
		ListIDsByOwnerFunc: func(ctx context.Context, kind account.Role, ownerID string) ([]string, error) {
			t.Fatal("customers hold no subscriptions")
			return nil, nil
		},
	}
	svc := newLifecycle(tr.repo(), billing, &mockPayments{}, &recordingTx{})

	require.NoError(t, svc.Delete(context.Background(), tr.trainer.Principal(), account.RoleCustomer, "cus_one"))
}

func TestBulk_IsolatesFailures(t *testing.T) {
	tr := newTree()
	repo := tr.repo()
	repo.UpdateFunc = func(ctx context.Context, role account.Role, id string, patch account.Patch) (*account.Account, error) {
		a, _ := repo.FindByID(ctx, role, id)
		return a, nil
	}
	svc := newLifecycle(repo, &mockBilling{}, &mockPayments{}, &recordingTx{})

	result := svc.Bulk(context.Background(), tr.admin.Principal(), []BulkItem{
		{ID: "trn_one", Kind: "trainer", Action: "suspend"},
		{ID: "trn_two", Kind: "trainer", Action: "suspend"},
		{ID: "x", Kind: "OWNER", Action: "delete"},
		{ID: "trn_one", Kind: "TRAINER", Action: "impersonate"},
		{ID: "trn_one", Kind: "TRAINER", Action: "activate"},
	})

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Results, 5)

	assert.True(t, result.Results[0].Success)
	assert.Equal(t, string(errors.ErrorTypeInsufficientPermissions), result.Results[1].ErrorType)
	assert.Equal(t, account.ReasonOutsideHierarchy, result.Results[1].Reason)
	assert.Equal(t, string(errors.ErrorTypeUnknownRole), result.Results[2].ErrorType)
	assert.Equal(t, string(errors.ErrorTypeValidation), result.Results[3].ErrorType)
	assert.True(t, result.Results[4].Success)
}
