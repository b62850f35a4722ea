package payment

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateExternalID is returned by Create when external_payment_id already exists.
var ErrDuplicateExternalID = errors.New("payment already recorded")

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByExternalID(ctx context.Context, externalPaymentID string) (*Payment, error)
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Payment, error)
	DeleteBySubscriptionIDs(ctx context.Context, subscriptionIDs []string) (int64, error)

	// SumCompletedSince totals COMPLETED payments paid at or after since, per currency.
	SumCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error)
}
