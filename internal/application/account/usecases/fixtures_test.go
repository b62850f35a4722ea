package usecases

import (
	"github.com/dietdesk/dietdesk/internal/domain/account"
)

type tree struct {
	super    *account.Account
	peer     *account.Account
	admin    *account.Account
	other    *account.Account
	trainer  *account.Account
	stranger *account.Account
	customer *account.Account
}

func newTree() tree {
	mk := func(role account.Role, id, parent string) *account.Account {
		return &account.Account{
			ID:           id,
			Role:         role,
			Email:        id + "@example.com",
			Name:         id,
			PasswordHash: "hash:secret",
			Status:       account.StatusActive,
			ParentID:     parent,
		}
	}
	return tree{
		super:    mk(account.RoleSuperAdmin, "sa_root", ""),
		peer:     mk(account.RoleSuperAdmin, "sa_peer", ""),
		admin:    mk(account.RoleAdmin, "adm_one", "sa_root"),
		other:    mk(account.RoleAdmin, "adm_two", "sa_root"),
		trainer:  mk(account.RoleTrainer, "trn_one", "adm_one"),
		stranger: mk(account.RoleTrainer, "trn_two", "adm_two"),
		customer: mk(account.RoleCustomer, "cus_one", "trn_one"),
	}
}

func (t tree) all() []*account.Account {
	return []*account.Account{t.super, t.peer, t.admin, t.other, t.trainer, t.stranger, t.customer}
}

func (t tree) repo() *mockAccountRepository {
	return (&mockAccountRepository{}).withAccounts(t.all()...)
}
