package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// Owner is a polymorphic (owner_kind, owner_id) pair; there are no per-kind FK columns.
type SubscriptionModel struct {
	ID                 string     `gorm:"primaryKey;size:32;comment:Stripe-style ID: sub_xxx"`
	OwnerKind          string     `gorm:"not null;size:20;index:idx_subscription_owner,priority:1"`
	OwnerID            string     `gorm:"not null;size:32;index:idx_subscription_owner,priority:2"`
	PlanID             string     `gorm:"not null;size:32;index"`
	Status             string     `gorm:"not null;size:20;index"`
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool `gorm:"not null"`
	ExternalCustomerID *string `gorm:"size:100"`
	// Unique when set; several NULLs are allowed.
	ExternalSubscriptionID *string `gorm:"uniqueIndex;size:100"`
	Overrides              datatypes.JSONMap
	CreatedAt              time.Time `gorm:"index:idx_subscription_owner,priority:3"`
	UpdatedAt              time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
