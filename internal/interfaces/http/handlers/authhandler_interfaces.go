package handlers

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

type registerAccountUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterAccountCommand) (*usecases.RegisterAccountResult, error)
}
