package dto

import (
	"time"

	subscriptionDTO "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
)

// DashboardStats is one snapshot of the caller's part of the tree. Global
// figures (subscriptions per status, revenue) are only filled for super admins.
type DashboardStats struct {
	Scope          string                           `json:"scope"`
	Accounts       map[string]int64                 `json:"accounts"`
	Subscriptions  map[string]int64                 `json:"subscriptions,omitempty"`
	MonthlyRevenue map[string]int64                 `json:"monthly_revenue,omitempty"`
	Subscription   *subscriptionDTO.SubscriptionDTO `json:"subscription,omitempty"`
	Capacity       *subscription.Capacity           `json:"capacity,omitempty"`
	GeneratedAt    time.Time                        `json:"generated_at"`
}
