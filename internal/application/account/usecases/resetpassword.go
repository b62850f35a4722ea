package usecases

import (
	"context"
	"fmt"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type ResetPasswordCommand struct {
	Actor account.Principal
	Role  account.Role
	ID    string
	// NewPassword is generated when empty.
	NewPassword string
}

type ResetPasswordResult struct {
	TemporaryPassword string
}

type ResetPasswordUseCase struct {
	accountRepo      account.Repository
	hasher           PasswordHasher
	generatePassword PasswordGenerator
	notifier         Notifier
	logger           logger.Interface
}

func NewResetPasswordUseCase(
	accountRepo account.Repository,
	hasher PasswordHasher,
	generatePassword PasswordGenerator,
	notifier Notifier,
	logger logger.Interface,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		accountRepo:      accountRepo,
		hasher:           hasher,
		generatePassword: generatePassword,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) (*ResetPasswordResult, error) {
	actor, err := resolveActor(ctx, uc.accountRepo, cmd.Actor)
	if err != nil {
		return nil, err
	}
	target, err := loadTarget(ctx, uc.accountRepo, cmd.Role, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAction(ctx, uc.accountRepo, account.ActionResetPassword, actor, target); err != nil {
		return nil, err
	}

	password, temporary := cmd.NewPassword, ""
	if password == "" {
		if password, err = uc.generatePassword(); err != nil {
			uc.logger.Errorw("failed to generate password", "error", err)
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		temporary = password
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, errors.NewValidationError("invalid password", err.Error())
	}
	if err := uc.accountRepo.UpdatePassword(ctx, target.Role, target.ID, hash); err != nil {
		return nil, err
	}

	if err := uc.notifier.SendPasswordResetEmail(target.Email, target.Name, password); err != nil {
		uc.logger.Warnw("failed to send password reset email", "id", target.ID, "error", err)
	}

	uc.logger.Infow("password reset", "id", target.ID, "role", target.Role, "actor_id", actor.ID)
	return &ResetPasswordResult{TemporaryPassword: temporary}, nil
}
