package subscription

import (
	"strings"
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/id"
)

type Tier string

const (
	TierFree       Tier = "FREE"
	TierStarter    Tier = "STARTER"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TierFree, TierStarter, TierPro, TierEnterprise:
		return t, nil
	}
	return "", errors.NewValidationError("invalid plan tier", s)
}

// Plan is a catalog entry. Prices are in minor currency units.
type Plan struct {
	ID           string
	Name         string
	Slug         string
	Tier         Tier
	MonthlyPrice int64
	Currency     string
	// MaxCustomers nil means unlimited.
	MaxCustomers    *int64
	Active          bool
	ExternalPriceID string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewPlanParams struct {
	Name            string
	Slug            string
	Tier            Tier
	MonthlyPrice    int64
	Currency        string
	MaxCustomers    *int64
	ExternalPriceID string
	Description     string
}

func NewPlan(p NewPlanParams) (*Plan, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.NewValidationError("plan name is required")
	}
	if strings.TrimSpace(p.Slug) == "" {
		return nil, errors.NewValidationError("plan slug is required")
	}
	if p.MonthlyPrice < 0 {
		return nil, errors.NewValidationError("monthly price cannot be negative")
	}
	if p.MaxCustomers != nil && *p.MaxCustomers < 0 {
		return nil, errors.NewValidationError("max customers cannot be negative")
	}
	if p.Tier == TierFree && p.MonthlyPrice != 0 {
		return nil, errors.NewValidationError("free tier plans must have a zero price")
	}
	if p.Tier != TierFree && p.MonthlyPrice > 0 && p.ExternalPriceID == "" {
		return nil, errors.NewValidationError("paid plans need an external price id")
	}

	planID, err := id.New(id.PrefixPlan)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &Plan{
		ID:              planID,
		Name:            strings.TrimSpace(p.Name),
		Slug:            strings.ToLower(strings.TrimSpace(p.Slug)),
		Tier:            p.Tier,
		MonthlyPrice:    p.MonthlyPrice,
		Currency:        strings.ToLower(p.Currency),
		MaxCustomers:    p.MaxCustomers,
		Active:          true,
		ExternalPriceID: p.ExternalPriceID,
		Description:     p.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsFree is the zero-cost tier: no checkout, active immediately.
func (p *Plan) IsFree() bool {
	return p.Tier == TierFree || p.MonthlyPrice == 0
}
