package handlers

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
)

// Use case interfaces for AccountHandler

type createAccountUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateAccountCommand) (*usecases.CreateAccountResult, error)
}

type getAccountUseCase interface {
	Execute(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error)
}

type listAccountsUseCase interface {
	Execute(ctx context.Context, query usecases.ListAccountsQuery) (*usecases.ListAccountsResult, error)
}

type updateAccountUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateAccountCommand) (*account.Account, error)
}

type accountLifecycle interface {
	Suspend(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error)
	Activate(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error)
	Delete(ctx context.Context, actor account.Principal, role account.Role, id string) error
	Bulk(ctx context.Context, actor account.Principal, items []usecases.BulkItem) *dto.BulkResultDTO
}

type resetPasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) (*usecases.ResetPasswordResult, error)
}

type impersonateUseCase interface {
	Execute(ctx context.Context, cmd usecases.ImpersonateCommand) (*usecases.ImpersonateResult, error)
}
