package usecases

import (
	"context"
	"fmt"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

const reasonNestedImpersonation = "nested_impersonation"

type ImpersonateCommand struct {
	Actor account.Principal
	// ImpersonatorID is set when the actor itself is being impersonated.
	ImpersonatorID string
	Role           account.Role
	ID             string
}

type ImpersonateResult struct {
	Account *account.Account
	Tokens  *auth.TokenPair
}

type ImpersonateUseCase struct {
	accountRepo account.Repository
	tokens      TokenIssuer
	logger      logger.Interface
}

func NewImpersonateUseCase(accountRepo account.Repository, tokens TokenIssuer, logger logger.Interface) *ImpersonateUseCase {
	return &ImpersonateUseCase{accountRepo: accountRepo, tokens: tokens, logger: logger}
}

// Execute issues an access-only token for the target; it carries the actor as impersonator.
func (uc *ImpersonateUseCase) Execute(ctx context.Context, cmd ImpersonateCommand) (*ImpersonateResult, error) {
	if cmd.ImpersonatorID != "" {
		return nil, errors.NewInsufficientPermissionsError(reasonNestedImpersonation, "end the current impersonation first")
	}
	actor, err := resolveActor(ctx, uc.accountRepo, cmd.Actor)
	if err != nil {
		return nil, err
	}
	target, err := loadTarget(ctx, uc.accountRepo, cmd.Role, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAction(ctx, uc.accountRepo, account.ActionImpersonate, actor, target); err != nil {
		return nil, err
	}

	tokens, err := uc.tokens.GenerateAccessOnly(auth.Identity{
		AccountID:      target.ID,
		Role:           target.Role,
		ImpersonatorID: actor.ID,
	})
	if err != nil {
		uc.logger.Errorw("failed to issue impersonation token", "target_id", target.ID, "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Warnw("impersonation started", "actor_id", actor.ID, "actor_role", actor.Role, "target_id", target.ID, "target_role", target.Role)
	return &ImpersonateResult{Account: target, Tokens: tokens}, nil
}
