package usecases

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

// PlanCatalog is the YAML plan file read by `bootstrap plans`.
type PlanCatalog struct {
	Plans []PlanEntry `yaml:"plans"`
}

type PlanEntry struct {
	Name            string `yaml:"name"`
	Slug            string `yaml:"slug"`
	Tier            string `yaml:"tier"`
	MonthlyPrice    int64  `yaml:"monthly_price"`
	Currency        string `yaml:"currency"`
	MaxCustomers    *int64 `yaml:"max_customers"`
	ExternalPriceID string `yaml:"external_price_id"`
	Description     string `yaml:"description"`
	Active          *bool  `yaml:"active"`
}

func ParsePlanCatalog(r io.Reader) (*PlanCatalog, error) {
	var catalog PlanCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}
	return &catalog, nil
}

type SeedPlansResult struct {
	Created int
	Updated int
}

// SeedPlansUseCase upserts a catalog by slug.
type SeedPlansUseCase struct {
	planRepo        subscription.PlanRepository
	defaultCurrency string
	logger          logger.Interface
}

func NewSeedPlansUseCase(planRepo subscription.PlanRepository, defaultCurrency string, logger logger.Interface) *SeedPlansUseCase {
	return &SeedPlansUseCase{planRepo: planRepo, defaultCurrency: defaultCurrency, logger: logger}
}

func (uc *SeedPlansUseCase) Execute(ctx context.Context, catalog *PlanCatalog) (*SeedPlansResult, error) {
	result := &SeedPlansResult{}
	for i, entry := range catalog.Plans {
		cmd := CreatePlanCommand{
			Name:            entry.Name,
			Slug:            entry.Slug,
			Tier:            entry.Tier,
			MonthlyPrice:    entry.MonthlyPrice,
			Currency:        entry.Currency,
			MaxCustomers:    entry.MaxCustomers,
			ExternalPriceID: entry.ExternalPriceID,
			Description:     entry.Description,
		}
		params, err := cmd.params(uc.defaultCurrency)
		if err != nil {
			return result, fmt.Errorf("plan #%d: %w", i+1, err)
		}
		plan, err := subscription.NewPlan(params)
		if err != nil {
			return result, fmt.Errorf("plan #%d (%s): %w", i+1, entry.Slug, err)
		}
		if entry.Active != nil {
			plan.Active = *entry.Active
		}

		existing, err := uc.planRepo.GetBySlug(ctx, plan.Slug)
		if err != nil {
			return result, err
		}
		if existing == nil {
			if err := uc.planRepo.Create(ctx, plan); err != nil {
				return result, err
			}
			result.Created++
			uc.logger.Infow("plan seeded", "slug", plan.Slug)
			continue
		}

		existing.Name = plan.Name
		existing.Tier = plan.Tier
		existing.MonthlyPrice = plan.MonthlyPrice
		existing.Currency = plan.Currency
		existing.MaxCustomers = plan.MaxCustomers
		existing.ExternalPriceID = plan.ExternalPriceID
		existing.Description = plan.Description
		existing.Active = plan.Active
		existing.UpdatedAt = biztime.NowUTC()
		if err := uc.planRepo.Update(ctx, existing); err != nil {
			return result, err
		}
		result.Updated++
		uc.logger.Infow("plan updated from catalog", "slug", plan.Slug)
	}
	return result, nil
}
