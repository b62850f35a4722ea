package subscription

import (
	"strconv"
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/id"
)

// Subscription is owned by exactly one (OwnerKind, OwnerID) account. Only
// the most recently created row per owner is current.
type Subscription struct {
	ID                     string
	OwnerID                string
	OwnerKind              account.Role
	PlanID                 string
	Status                 Status
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time
	CancelAtPeriodEnd      bool
	ExternalCustomerID     string
	ExternalSubscriptionID string
	// Overrides holds per-account limit exceptions, e.g. "max_customers".
	Overrides map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates the ledger row for a plan choice. Free plans start ACTIVE
// for freePeriodDays; paid plans wait INACTIVE for activation.
func New(ownerKind account.Role, ownerID string, plan *Plan, externalCustomerID string, now time.Time, freePeriodDays int) (*Subscription, error) {
	subID, err := id.New(id.PrefixSubscription)
	if err != nil {
		return nil, err
	}
	if freePeriodDays <= 0 {
		freePeriodDays = constants.DefaultFreePeriodDays
	}

	s := &Subscription{
		ID:                 subID,
		OwnerID:            ownerID,
		OwnerKind:          ownerKind,
		PlanID:             plan.ID,
		Status:             StatusInactive,
		ExternalCustomerID: externalCustomerID,
		Overrides:          map[string]any{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if plan.IsFree() {
		s.Status = StatusActive
		s.CurrentPeriodStart = now
		s.CurrentPeriodEnd = biztime.AddDays(now, freePeriodDays)
	}
	return s, nil
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// Activate attaches the external handle and sets the period. It returns
// false when the row is already ACTIVE with the same handle and period, and
// for CANCELED rows, which never come back.
func (s *Subscription) Activate(externalSubscriptionID string, periodStart, periodEnd time.Time, now time.Time) bool {
	if s.Status == StatusCanceled {
		return false
	}
	if s.Status == StatusActive &&
		s.ExternalSubscriptionID == externalSubscriptionID &&
		s.CurrentPeriodStart.Equal(periodStart) &&
		s.CurrentPeriodEnd.Equal(periodEnd) {
		return false
	}
	s.Status = StatusActive
	s.ExternalSubscriptionID = externalSubscriptionID
	if !periodStart.IsZero() {
		s.CurrentPeriodStart = periodStart
	}
	if !periodEnd.IsZero() {
		s.CurrentPeriodEnd = periodEnd
	}
	s.UpdatedAt = now
	return true
}

// MaxCustomersOverride reads overrides["max_customers"]. A JSON null means unlimited.
func (s *Subscription) MaxCustomersOverride() (limit *int64, ok bool) {
	raw, present := s.Overrides[constants.OverrideMaxCustomers]
	if !present {
		return nil, false
	}
	switch v := raw.(type) {
	case nil:
		return nil, true
	case float64:
		n := int64(v)
		return &n, true
	case int:
		n := int64(v)
		return &n, true
	case int64:
		return &v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		return &n, true
	}
	return nil, false
}

// MarkPastDue flags a failed renewal. Canceled rows stay canceled.
func (s *Subscription) MarkPastDue(now time.Time) bool {
	if s.Status == StatusPastDue || s.Status == StatusCanceled {
		return false
	}
	s.Status = StatusPastDue
	s.UpdatedAt = now
	return true
}

// Cancel ends the subscription immediately.
func (s *Subscription) Cancel(now time.Time) bool {
	if s.Status == StatusCanceled {
		return false
	}
	s.Status = StatusCanceled
	s.CancelAtPeriodEnd = false
	s.UpdatedAt = now
	return true
}

// SyncFromProvider copies the provider's view onto the row. Zero periods
// leave the stored period unchanged. It reports whether anything changed.
func (s *Subscription) SyncFromProvider(status Status, periodStart, periodEnd time.Time, cancelAtPeriodEnd bool, now time.Time) bool {
	changed := false
	if status.IsValid() && status != s.Status {
		s.Status = status
		changed = true
	}
	if !periodStart.IsZero() && !periodStart.Equal(s.CurrentPeriodStart) {
		s.CurrentPeriodStart = periodStart
		changed = true
	}
	if !periodEnd.IsZero() && !periodEnd.Equal(s.CurrentPeriodEnd) {
		s.CurrentPeriodEnd = periodEnd
		changed = true
	}
	if cancelAtPeriodEnd != s.CancelAtPeriodEnd {
		s.CancelAtPeriodEnd = cancelAtPeriodEnd
		changed = true
	}
	if changed {
		s.UpdatedAt = now
	}
	return changed
}
