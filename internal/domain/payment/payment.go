package payment

import (
	"strings"
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/id"
)

type Status string

const (
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

// Payment is one charge against a subscription. Amount is in minor units.
type Payment struct {
	ID                string
	SubscriptionID    string
	Amount            int64
	Currency          string
	Status            Status
	ExternalPaymentID string
	PaidAt            *time.Time
	FailureReason     string
	CreatedAt         time.Time
}

func newPayment(subscriptionID string, amount int64, currency, externalPaymentID string, status Status, now time.Time) (*Payment, error) {
	if subscriptionID == "" {
		return nil, errors.NewValidationError("subscription id is required")
	}
	if externalPaymentID == "" {
		return nil, errors.NewValidationError("external payment id is required")
	}
	if amount < 0 {
		return nil, errors.NewValidationError("amount cannot be negative")
	}
	paymentID, err := id.New(id.PrefixPayment)
	if err != nil {
		return nil, err
	}
	return &Payment{
		ID:                paymentID,
		SubscriptionID:    subscriptionID,
		Amount:            amount,
		Currency:          strings.ToLower(currency),
		Status:            status,
		ExternalPaymentID: externalPaymentID,
		CreatedAt:         now,
	}, nil
}

func NewCompleted(subscriptionID string, amount int64, currency, externalPaymentID string, paidAt time.Time) (*Payment, error) {
	p, err := newPayment(subscriptionID, amount, currency, externalPaymentID, StatusCompleted, paidAt)
	if err != nil {
		return nil, err
	}
	p.PaidAt = &paidAt
	return p, nil
}

func NewFailed(subscriptionID string, amount int64, currency, externalPaymentID, reason string, now time.Time) (*Payment, error) {
	p, err := newPayment(subscriptionID, amount, currency, externalPaymentID, StatusFailed, now)
	if err != nil {
		return nil, err
	}
	p.FailureReason = reason
	return p, nil
}
