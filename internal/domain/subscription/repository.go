package subscription

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
)

// Repository persists subscriptions. Lookups return (nil, nil) when absent.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// GetCurrent returns the most recently created subscription of the owner.
	GetCurrent(ctx context.Context, ownerKind account.Role, ownerID string) (*Subscription, error)

	GetByExternalID(ctx context.Context, externalSubscriptionID string) (*Subscription, error)

	// GetLatestInactive returns the newest INACTIVE row of the owner.
	GetLatestInactive(ctx context.Context, ownerKind account.Role, ownerID string) (*Subscription, error)

	// Update saves every mutable column. A unique violation on the external
	// subscription id is returned as ErrExternalIDTaken.
	Update(ctx context.Context, sub *Subscription) error

	ListIDsByOwner(ctx context.Context, ownerKind account.Role, ownerID string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerKind account.Role, ownerID string) (int64, error)

	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) error
}
