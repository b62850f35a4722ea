package dto

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
)

type PlanDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Tier            string `json:"tier"`
	MonthlyPrice    int64  `json:"monthly_price"`
	Currency        string `json:"currency"`
	MaxCustomers    *int64 `json:"max_customers"`
	Active          bool   `json:"active"`
	Description     string `json:"description,omitempty"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

type SubscriptionDTO struct {
	ID                 string     `json:"id"`
	OwnerID            string     `json:"owner_id"`
	OwnerKind          string     `json:"owner_kind"`
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToPlanDTO(p *subscription.Plan, descriptionHTML string) *PlanDTO {
	return &PlanDTO{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Tier:            string(p.Tier),
		MonthlyPrice:    p.MonthlyPrice,
		Currency:        p.Currency,
		MaxCustomers:    p.MaxCustomers,
		Active:          p.Active,
		Description:     p.Description,
		DescriptionHTML: descriptionHTML,
	}
}

func ToSubscriptionDTO(s *subscription.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		OwnerKind:          string(s.OwnerKind),
		PlanID:             s.PlanID,
		Status:             string(s.Status),
		CurrentPeriodStart: timePtr(s.CurrentPeriodStart),
		CurrentPeriodEnd:   timePtr(s.CurrentPeriodEnd),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CreatedAt:          s.CreatedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
