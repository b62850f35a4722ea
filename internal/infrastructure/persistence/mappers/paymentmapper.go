package mappers

import (
	"github.com/dietdesk/dietdesk/internal/domain/payment"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:                p.ID,
		SubscriptionID:    p.SubscriptionID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Status:            string(p.Status),
		ExternalPaymentID: p.ExternalPaymentID,
		PaidAt:            p.PaidAt,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt,
	}
}

func PaymentToDomain(m *models.PaymentModel) *payment.Payment {
	if m == nil {
		return nil
	}
	p := &payment.Payment{
		ID:                m.ID,
		SubscriptionID:    m.SubscriptionID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Status:            payment.Status(m.Status),
		ExternalPaymentID: m.ExternalPaymentID,
		FailureReason:     m.FailureReason,
		CreatedAt:         m.CreatedAt.UTC(),
	}
	if m.PaidAt != nil {
		paidAt := m.PaidAt.UTC()
		p.PaidAt = &paidAt
	}
	return p
}
