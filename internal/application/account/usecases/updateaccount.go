package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type UpdateAccountCommand struct {
	Actor account.Principal
	Role  account.Role
	ID    string
	Email *string
	Name  *string
	// Status, when set, is guarded like suspend or activate.
	Status *string
}

type UpdateAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewUpdateAccountUseCase(accountRepo account.Repository, logger logger.Interface) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo, logger: logger}
}

func (uc *UpdateAccountUseCase) Execute(ctx context.Context, cmd UpdateAccountCommand) (*account.Account, error) {
	actor, err := resolveActor(ctx, uc.accountRepo, cmd.Actor)
	if err != nil {
		return nil, err
	}
	target, err := loadTarget(ctx, uc.accountRepo, cmd.Role, cmd.ID)
	if err != nil {
		return nil, err
	}
	if cmd.Email != nil || cmd.Name != nil || cmd.Status == nil {
		if err := authorizeAction(ctx, uc.accountRepo, account.ActionUpdate, actor, target); err != nil {
			return nil, err
		}
	}

	patch := account.Patch{Email: cmd.Email, Name: cmd.Name}
	if cmd.Status != nil {
		status, err := account.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		action := account.ActionSuspend
		if status.IsActive() {
			action = account.ActionActivate
		}
		if err := authorizeAction(ctx, uc.accountRepo, action, actor, target); err != nil {
			return nil, err
		}
		patch.Status = &status
	}

	updated, err := uc.accountRepo.Update(ctx, cmd.Role, cmd.ID, patch)
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("account updated", "id", cmd.ID, "role", cmd.Role, "actor_id", actor.ID)
	return updated, nil
}
