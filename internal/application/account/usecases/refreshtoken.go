package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type RefreshTokenUseCase struct {
	accountRepo account.Repository
	tokens      TokenIssuer
	logger      logger.Interface
}

func NewRefreshTokenUseCase(accountRepo account.Repository, tokens TokenIssuer, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{accountRepo: accountRepo, tokens: tokens, logger: logger}
}

// Execute rotates the pair. Accounts deactivated since login lose their session.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, pair, err := uc.tokens.Refresh(refreshToken)
	if err != nil {
		uc.logger.Debugw("refresh rejected", "error", err)
		return nil, errors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}

	found, err := uc.accountRepo.FindByID(ctx, claims.Role, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}
	if !found.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}
	return pair, nil
}
