package mappers

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	overrides := datatypes.JSONMap{}
	for k, v := range s.Overrides {
		overrides[k] = v
	}
	return &models.SubscriptionModel{
		ID:                     s.ID,
		OwnerKind:              string(s.OwnerKind),
		OwnerID:                s.OwnerID,
		PlanID:                 s.PlanID,
		Status:                 string(s.Status),
		CurrentPeriodStart:     optionalTime(s.CurrentPeriodStart),
		CurrentPeriodEnd:       optionalTime(s.CurrentPeriodEnd),
		CancelAtPeriodEnd:      s.CancelAtPeriodEnd,
		ExternalCustomerID:     optionalString(s.ExternalCustomerID),
		ExternalSubscriptionID: optionalString(s.ExternalSubscriptionID),
		Overrides:              overrides,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func SubscriptionToDomain(m *models.SubscriptionModel) *subscription.Subscription {
	if m == nil {
		return nil
	}
	overrides := make(map[string]any, len(m.Overrides))
	for k, v := range m.Overrides {
		overrides[k] = v
	}
	return &subscription.Subscription{
		ID:                     m.ID,
		OwnerID:                m.OwnerID,
		OwnerKind:              account.Role(m.OwnerKind),
		PlanID:                 m.PlanID,
		Status:                 subscription.Status(m.Status),
		CurrentPeriodStart:     derefTime(m.CurrentPeriodStart),
		CurrentPeriodEnd:       derefTime(m.CurrentPeriodEnd),
		CancelAtPeriodEnd:      m.CancelAtPeriodEnd,
		ExternalCustomerID:     derefString(m.ExternalCustomerID),
		ExternalSubscriptionID: derefString(m.ExternalSubscriptionID),
		Overrides:              overrides,
		CreatedAt:              m.CreatedAt.UTC(),
		UpdatedAt:              m.UpdatedAt.UTC(),
	}
}

func PlanToModel(p *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Tier:            string(p.Tier),
		MonthlyPrice:    p.MonthlyPrice,
		Currency:        p.Currency,
		MaxCustomers:    p.MaxCustomers,
		Active:          p.Active,
		ExternalPriceID: p.ExternalPriceID,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func PlanToDomain(m *models.PlanModel) *subscription.Plan {
	if m == nil {
		return nil
	}
	return &subscription.Plan{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		Tier:            subscription.Tier(m.Tier),
		MonthlyPrice:    m.MonthlyPrice,
		Currency:        m.Currency,
		MaxCustomers:    m.MaxCustomers,
		Active:          m.Active,
		ExternalPriceID: m.ExternalPriceID,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
