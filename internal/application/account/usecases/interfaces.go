package usecases

import (
	"context"

	subscriptionUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenIssuer interface {
	Generate(id auth.Identity) (*auth.TokenPair, error)
	GenerateAccessOnly(id auth.Identity) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.Claims, *auth.TokenPair, error)
}

// Notifier delivers account mail. Failures are logged, never returned to the caller.
type Notifier interface {
	SendWelcomeEmail(to, name, role, temporaryPassword string) error
	SendPasswordResetEmail(to, name, temporaryPassword string) error
}

type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// SubscriptionLedger is the part of the subscription ledger account flows use.
type SubscriptionLedger interface {
	Create(ctx context.Context, ownerKind account.Role, ownerID, planID, externalCustomerID string) (*subscription.Subscription, error)
	CheckCustomerCapacity(ctx context.Context, ownerKind account.Role, ownerID string) (subscription.Capacity, error)
}

type CheckoutStarter interface {
	Execute(ctx context.Context, cmd subscriptionUsecases.CreateCheckoutCommand) (*subscriptionUsecases.CreateCheckoutResult, error)
}

// OwnedBilling removes an owner's subscriptions and their payments.
type OwnedBilling interface {
	ListIDsByOwner(ctx context.Context, ownerKind account.Role, ownerID string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerKind account.Role, ownerID string) (int64, error)
}

type PaymentPurger interface {
	DeleteBySubscriptionIDs(ctx context.Context, subscriptionIDs []string) (int64, error)
}

// PasswordGenerator returns a random temporary password.
type PasswordGenerator func() (string, error)
