package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
)

// maxAncestors bounds the parent walk: customer, trainer, admin, super admin.
const maxAncestors = 3

// resolveActor reloads the acting account so the guard sees its current status.
func resolveActor(ctx context.Context, repo account.Repository, actor account.Principal) (account.Principal, error) {
	if !actor.Role.IsValid() {
		return account.Principal{}, errors.NewUnknownRoleError(string(actor.Role))
	}
	a, err := repo.FindByID(ctx, actor.Role, actor.ID)
	if err != nil {
		return account.Principal{}, err
	}
	if a == nil {
		return account.Principal{}, errors.NewUnauthorizedError("acting account no longer exists")
	}
	return a.Principal(), nil
}

func loadTarget(ctx context.Context, repo account.Repository, role account.Role, id string) (*account.Account, error) {
	if !role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(role))
	}
	target, err := repo.FindByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.NewNotFoundError("account not found", id)
	}
	return target, nil
}

// ancestorsOf returns target's parent chain, nearest first.
func ancestorsOf(ctx context.Context, repo account.Repository, target *account.Account) ([]string, error) {
	var chain []string
	role, parentID := target.Role, target.ParentID
	for len(chain) < maxAncestors && parentID != "" {
		parentRole, ok := account.ParentRole(role)
		if !ok {
			break
		}
		chain = append(chain, parentID)
		parent, err := repo.FindByID(ctx, parentRole, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		role, parentID = parent.Role, parent.ParentID
	}
	return chain, nil
}

// authorizeAction runs the guard and the hierarchy check for action on target.
func authorizeAction(ctx context.Context, repo account.Repository, action account.Action, actor account.Principal, target *account.Account) error {
	if err := account.CheckAction(action, actor, target.Principal()); err != nil {
		return err
	}
	if actor.ID == target.ID && actor.Role == target.Role {
		return nil
	}
	ancestors, err := ancestorsOf(ctx, repo, target)
	if err != nil {
		return err
	}
	return account.CheckScope(actor, ancestors)
}

// authorizeView lets an account read itself or anything below it in its subtree.
func authorizeView(ctx context.Context, repo account.Repository, actor account.Principal, target *account.Account) error {
	if actor.ID == target.ID && actor.Role == target.Role {
		return nil
	}
	actorRank, _ := account.Rank(actor.Role)
	targetRank, _ := account.Rank(target.Role)
	if actorRank <= targetRank {
		return errors.NewInsufficientPermissionsError(account.ReasonRankNotHigher, "account is not visible to you")
	}
	ancestors, err := ancestorsOf(ctx, repo, target)
	if err != nil {
		return err
	}
	return account.CheckScope(actor, ancestors)
}
