package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dietdesk/dietdesk/internal/domain/payment"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/mappers"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type PaymentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// Create returns payment.ErrDuplicateExternalID when the provider payment id is already stored.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.PaymentToModel(p)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return payment.ErrDuplicateExternalID
		}
		r.logger.Errorw("failed to create payment", "external_payment_id", p.ExternalPaymentID, "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByExternalID(ctx context.Context, externalPaymentID string) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("external_payment_id = ?", externalPaymentID).
		Take(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment", "external_payment_id", externalPaymentID, "error", err)
		return nil, fmt.Errorf("failed to get payment by external id: %w", err)
	}
	return mappers.PaymentToDomain(&model), nil
}

func (r *PaymentRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Scopes(db.NewestFirst()).
		Find(&paymentModels).Error; err != nil {
		r.logger.Errorw("failed to list payments", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get payments by subscription_id: %w", err)
	}

	payments := make([]*payment.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = mappers.PaymentToDomain(&paymentModels[i])
	}
	return payments, nil
}

func (r *PaymentRepository) DeleteBySubscriptionIDs(ctx context.Context, subscriptionIDs []string) (int64, error) {
	if len(subscriptionIDs) == 0 {
		return 0, nil
	}
	result := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id IN ?", subscriptionIDs).
		Delete(&models.PaymentModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete payments", "subscriptions", len(subscriptionIDs), "error", result.Error)
		return 0, fmt.Errorf("failed to delete payments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PaymentRepository) SumCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Currency string
		Total    int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Select("currency, SUM(amount) AS total").
		Where("status = ? AND paid_at >= ?", string(payment.StatusCompleted), since.UTC()).
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to sum payments", "error", err)
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.Currency] = row.Total
	}
	return totals, nil
}
