package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type ListAccountsQuery struct {
	Actor    account.Principal
	Role     account.Role
	ParentID string
	Status   account.Status
	Page     int
	PageSize int
}

type ListAccountsResult struct {
	Accounts []*account.Account
	Total    int64
	Page     int
	PageSize int
}

type ListAccountsUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewListAccountsUseCase(accountRepo account.Repository, logger logger.Interface) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo, logger: logger}
}

func (uc *ListAccountsUseCase) Execute(ctx context.Context, query ListAccountsQuery) (*ListAccountsResult, error) {
	actor, err := resolveActor(ctx, uc.accountRepo, query.Actor)
	if err != nil {
		return nil, err
	}
	if !query.Role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(query.Role))
	}
	actorRank, _ := account.Rank(actor.Role)
	targetRank, _ := account.Rank(query.Role)
	if actorRank <= targetRank {
		return nil, errors.NewInsufficientPermissionsError(account.ReasonRankNotHigher, "you cannot list these accounts")
	}

	parentID, err := uc.scopeParent(ctx, actor, query.Role, query.ParentID)
	if err != nil {
		return nil, err
	}

	page, pageSize := db.NormalizePage(query.Page, query.PageSize)
	accounts, total, err := uc.accountRepo.List(ctx, account.ListFilter{
		Role:     query.Role,
		ParentID: parentID,
		Status:   query.Status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &ListAccountsResult{Accounts: accounts, Total: total, Page: page, PageSize: pageSize}, nil
}

// scopeParent pins the parent filter so a non-super-admin only lists its own subtree.
func (uc *ListAccountsUseCase) scopeParent(ctx context.Context, actor account.Principal, role account.Role, requested string) (string, error) {
	if actor.Role == account.RoleSuperAdmin {
		return requested, nil
	}
	parentRole, _ := account.ParentRole(role)
	if parentRole == actor.Role {
		if requested != "" && requested != actor.ID {
			return "", errors.NewInsufficientPermissionsError(account.ReasonOutsideHierarchy, "account is outside your hierarchy")
		}
		return actor.ID, nil
	}

	// an admin listing customers must name one of its trainers
	if requested == "" {
		return "", errors.NewValidationError("parent_id is required")
	}
	parent, err := uc.accountRepo.FindByID(ctx, parentRole, requested)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", errors.NewNotFoundError("parent account not found", requested)
	}
	ancestors, err := ancestorsOf(ctx, uc.accountRepo, parent)
	if err != nil {
		return "", err
	}
	if err := account.CheckScope(actor, ancestors); err != nil {
		return "", err
	}
	return parent.ID, nil
}
