package subscription

import "github.com/dietdesk/dietdesk/internal/domain/account"

// Capacity is the answer to "may this account attach another customer?".
// Max and Remaining are nil when unlimited. Subscribed is false when the
// account holds no subscription at all.
type Capacity struct {
	Allowed    bool   `json:"allowed"`
	Subscribed bool   `json:"subscribed"`
	Current   int64  `json:"current"`
	Max       *int64 `json:"max"`
	Remaining *int64 `json:"remaining"`
}

// EvaluateCapacity applies the plan cap (or override) of an ACTIVE
// subscription to current. sub may be nil.
func EvaluateCapacity(role account.Role, sub *Subscription, plan *Plan, current int64) Capacity {
	if role == account.RoleCustomer || role == account.RoleSuperAdmin {
		return Capacity{Allowed: true, Current: current}
	}
	if sub == nil {
		return Capacity{Allowed: false, Current: current}
	}
	if !sub.IsActive() || plan == nil {
		return Capacity{Allowed: false, Subscribed: true, Current: current}
	}

	limit := plan.MaxCustomers
	if override, ok := sub.MaxCustomersOverride(); ok {
		limit = override
	}
	if limit == nil {
		return Capacity{Allowed: true, Subscribed: true, Current: current}
	}

	remaining := *limit - current
	if remaining < 0 {
		remaining = 0
	}
	max := *limit
	return Capacity{
		Allowed:    current < max,
		Subscribed: true,
		Current:    current,
		Max:        &max,
		Remaining:  &remaining,
	}
}
