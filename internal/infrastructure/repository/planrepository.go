package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/mappers"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type PlanRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) *PlanRepository {
	return &PlanRepository{db: db, logger: logger}
}

func (r *PlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.PlanToModel(plan)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return subscription.ErrPlanSlugExists
		}
		r.logger.Errorw("failed to create plan", "slug", plan.Slug, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) get(ctx context.Context, column, value string) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Where(column+" = ?", value).Take(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan", column, value, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model), nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id string) (*subscription.Plan, error) {
	return r.get(ctx, "id", id)
}

func (r *PlanRepository) GetBySlug(ctx context.Context, slug string) (*subscription.Plan, error) {
	return r.get(ctx, "slug", slug)
}

// List orders plans by price so the catalog reads cheapest first.
func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var planModels []models.PlanModel
	if err := query.Order("monthly_price ASC").Order("slug ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*subscription.Plan, len(planModels))
	for i := range planModels {
		plans[i] = mappers.PlanToDomain(&planModels[i])
	}
	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *subscription.Plan) error {
	model := mappers.PlanToModel(plan)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("id = ?", plan.ID).
		Updates(map[string]any{
			"name":              model.Name,
			"monthly_price":     model.MonthlyPrice,
			"currency":          model.Currency,
			"max_customers":     model.MaxCustomers,
			"active":            model.Active,
			"external_price_id": model.ExternalPriceID,
			"description":       model.Description,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "id", plan.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	return nil
}
