package usecases

import (
	"context"
	stderrors "errors"

	"github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name            string
	Slug            string
	Tier            string
	MonthlyPrice    int64
	Currency        string
	MaxCustomers    *int64
	ExternalPriceID string
	Description     string
}

func (c CreatePlanCommand) params(defaultCurrency string) (subscription.NewPlanParams, error) {
	tier, err := subscription.ParseTier(c.Tier)
	if err != nil {
		return subscription.NewPlanParams{}, err
	}
	currency := c.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return subscription.NewPlanParams{
		Name:            c.Name,
		Slug:            c.Slug,
		Tier:            tier,
		MonthlyPrice:    c.MonthlyPrice,
		Currency:        currency,
		MaxCustomers:    c.MaxCustomers,
		ExternalPriceID: c.ExternalPriceID,
		Description:     c.Description,
	}, nil
}

type CreatePlanUseCase struct {
	planRepo        subscription.PlanRepository
	defaultCurrency string
	logger          logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.PlanRepository, defaultCurrency string, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, defaultCurrency: defaultCurrency, logger: logger}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.Plan, error) {
	params, err := cmd.params(uc.defaultCurrency)
	if err != nil {
		return nil, err
	}
	plan, err := subscription.NewPlan(params)
	if err != nil {
		return nil, err
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		if stderrors.Is(err, subscription.ErrPlanSlugExists) {
			return nil, errors.NewConflictError("plan slug already exists", plan.Slug)
		}
		return nil, err
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID, "slug", plan.Slug, "tier", plan.Tier)
	return plan, nil
}

// ListPlansUseCase returns the catalog with descriptions rendered to sanitized HTML.
type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	renderer MarkdownRenderer
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, renderer MarkdownRenderer, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, renderer: renderer, logger: logger}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, activeOnly bool) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PlanDTO, 0, len(plans))
	for _, p := range plans {
		html, err := uc.renderer.Render(p.Description)
		if err != nil {
			uc.logger.Warnw("failed to render plan description", "plan_id", p.ID, "error", err)
			html = ""
		}
		out = append(out, dto.ToPlanDTO(p, html))
	}
	return out, nil
}

type UpdatePlanStatusUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewUpdatePlanStatusUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *UpdatePlanStatusUseCase {
	return &UpdatePlanStatusUseCase{planRepo: planRepo, logger: logger}
}

func (uc *UpdatePlanStatusUseCase) Execute(ctx context.Context, planID string, active bool) (*subscription.Plan, error) {
	plan, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", planID)
	}
	if plan.Active == active {
		return plan, nil
	}

	plan.Active = active
	plan.UpdatedAt = biztime.NowUTC()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	uc.logger.Infow("plan status updated", "plan_id", plan.ID, "active", active)
	return plan, nil
}
