package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/mappers"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type SubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, logger: logger}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return subscription.ErrExternalIDTaken
		}
		r.logger.Errorw("failed to create subscription", "owner_kind", sub.OwnerKind, "owner_id", sub.OwnerID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) first(ctx context.Context, query *gorm.DB, what string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := query.Scopes(db.NewestFirst()).Take(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "lookup", what, "error", err)
		return nil, fmt.Errorf("failed to get subscription by %s: %w", what, err)
	}
	return mappers.SubscriptionToDomain(&model), nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.first(ctx, tx.Where("id = ?", id), "id")
}

func (r *SubscriptionRepository) GetCurrent(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.first(ctx, tx.Where("owner_kind = ? AND owner_id = ?", string(ownerKind), ownerID), "owner")
}

func (r *SubscriptionRepository) GetByExternalID(ctx context.Context, externalSubscriptionID string) (*subscription.Subscription, error) {
	if externalSubscriptionID == "" {
		return nil, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)
	return r.first(ctx, tx.Where("external_subscription_id = ?", externalSubscriptionID), "external id")
}

func (r *SubscriptionRepository) GetLatestInactive(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.first(ctx, tx.Where("owner_kind = ? AND owner_id = ? AND status = ?",
		string(ownerKind), ownerID, string(subscription.StatusInactive)), "latest inactive")
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID).
		Updates(map[string]any{
			"plan_id":                  model.PlanID,
			"status":                   model.Status,
			"current_period_start":     model.CurrentPeriodStart,
			"current_period_end":       model.CurrentPeriodEnd,
			"cancel_at_period_end":     model.CancelAtPeriodEnd,
			"external_customer_id":     model.ExternalCustomerID,
			"external_subscription_id": model.ExternalSubscriptionID,
			"overrides":                model.Overrides,
			"updated_at":               model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return subscription.ErrExternalIDTaken
		}
		r.logger.Errorw("failed to update subscription", "id", sub.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	// RowsAffected may be 0 when updated values are identical to existing values.
	return nil
}

func (r *SubscriptionRepository) ListIDsByOwner(ctx context.Context, ownerKind account.Role, ownerID string) ([]string, error) {
	var ids []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("owner_kind = ? AND owner_id = ?", string(ownerKind), ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list subscription ids", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list subscription ids: %w", err)
	}
	return ids, nil
}

func (r *SubscriptionRepository) DeleteByOwner(ctx context.Context, ownerKind account.Role, ownerID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("owner_kind = ? AND owner_id = ?", string(ownerKind), ownerID).
		Delete(&models.SubscriptionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete subscriptions", "owner_id", ownerID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SubscriptionRepository) CountByStatus(ctx context.Context) (map[subscription.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	counts := map[subscription.Status]int64{
		subscription.StatusActive:   0,
		subscription.StatusInactive: 0,
		subscription.StatusPastDue:  0,
		subscription.StatusCanceled: 0,
	}
	for _, row := range rows {
		counts[subscription.Status(row.Status)] = row.Count
	}
	return counts, nil
}
