package models

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
)

type PaymentModel struct {
	ID                string     `gorm:"primaryKey;size:32"`
	SubscriptionID    string     `gorm:"not null;size:32;index"`
	Amount            int64      `gorm:"not null"`
	Currency          string     `gorm:"not null;size:3"`
	Status            string     `gorm:"not null;size:20;index:idx_payment_status_paid,priority:1"`
	ExternalPaymentID string     `gorm:"uniqueIndex;not null;size:100"`
	PaidAt            *time.Time `gorm:"index:idx_payment_status_paid,priority:2"`
	FailureReason     string     `gorm:"size:500"`
	CreatedAt         time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
