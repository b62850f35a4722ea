package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type GetAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewGetAccountUseCase(accountRepo account.Repository, logger logger.Interface) *GetAccountUseCase {
	return &GetAccountUseCase{accountRepo: accountRepo, logger: logger}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	actor, err := resolveActor(ctx, uc.accountRepo, actor)
	if err != nil {
		return nil, err
	}
	target, err := loadTarget(ctx, uc.accountRepo, role, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(ctx, uc.accountRepo, actor, target); err != nil {
		return nil, err
	}
	return target, nil
}
