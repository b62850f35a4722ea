package usecases

import (
	"context"
	"fmt"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Account *account.Account
	Tokens  *auth.TokenPair
}

type LoginUseCase struct {
	accountRepo account.Repository
	hasher      PasswordHasher
	tokens      TokenIssuer
	limiter     LoginLimiter
	logger      logger.Interface
}

func NewLoginUseCase(
	accountRepo account.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	limiter LoginLimiter,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		limiter:     limiter,
		logger:      logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := utils.NormalizeEmail(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	// limiter outages fail open; the password check still applies
	allowed, err := uc.limiter.Allow(ctx, email)
	if err != nil {
		uc.logger.Warnw("login rate limiter unavailable", "error", err)
	} else if !allowed {
		return nil, errors.NewTooManyAttemptsError()
	}

	found, err := uc.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := uc.hasher.Verify(cmd.Password, found.PasswordHash); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}
	if !found.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	tokens, err := uc.tokens.Generate(auth.Identity{AccountID: found.ID, Role: found.Role})
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "id", found.ID, "error", err)
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := uc.limiter.Reset(ctx, email); err != nil {
		uc.logger.Warnw("failed to reset login attempts", "error", err)
	}

	uc.logger.Infow("account logged in", "id", found.ID, "role", found.Role)
	return &LoginResult{Account: found, Tokens: tokens}, nil
}
