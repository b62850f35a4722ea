package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/payment"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type ActivateCommand struct {
	ExternalSubscriptionID string
	PeriodStart            time.Time
	PeriodEnd              time.Time
	// Owner is the metadata attached at checkout; it locates the pending
	// row when the external id has not been stored yet.
	Owner subscription.OwnerRef
}

type RecordPaymentCommand struct {
	SubscriptionID    string
	Amount            int64
	Currency          string
	ExternalPaymentID string
	PaidAt            time.Time
}

type RecordFailedPaymentCommand struct {
	SubscriptionID    string
	Amount            int64
	Currency          string
	ExternalPaymentID string
	FailureReason     string
}

// LedgerService owns subscription rows and their payments.
type LedgerService struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	paymentRepo      payment.Repository
	customers        CustomerCounter
	freePeriodDays   int
	logger           logger.Interface
}

func NewLedgerService(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	paymentRepo payment.Repository,
	customers CustomerCounter,
	freePeriodDays int,
	logger logger.Interface,
) *LedgerService {
	return &LedgerService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		paymentRepo:      paymentRepo,
		customers:        customers,
		freePeriodDays:   freePeriodDays,
		logger:           logger,
	}
}

// Current returns the owner's newest subscription, or nil.
func (s *LedgerService) Current(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error) {
	if !ownerKind.IsValid() {
		return nil, errors.NewUnknownRoleError(string(ownerKind))
	}
	return s.subscriptionRepo.GetCurrent(ctx, ownerKind, ownerID)
}

func (s *LedgerService) Create(ctx context.Context, ownerKind account.Role, ownerID, planID, externalCustomerID string) (*subscription.Subscription, error) {
	if !account.IsBillable(ownerKind) {
		return nil, errors.NewUnsupportedOperationError(fmt.Sprintf("%s accounts do not hold subscriptions", ownerKind))
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", planID)
	}
	if !plan.Active {
		return nil, errors.NewValidationError("plan is not available", plan.Slug)
	}

	sub, err := subscription.New(ownerKind, ownerID, plan, externalCustomerID, biztime.NowUTC(), s.freePeriodDays)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Infow("subscription created",
		"subscription_id", sub.ID,
		"owner_kind", ownerKind,
		"owner_id", ownerID,
		"plan", plan.Slug,
		"status", sub.Status,
	)
	return sub, nil
}

// Activate marks the subscription behind an external handle ACTIVE. Replays
// of the same handle and period return the row unchanged.
func (s *LedgerService) Activate(ctx context.Context, cmd ActivateCommand) (*subscription.Subscription, error) {
	if cmd.ExternalSubscriptionID == "" {
		return nil, errors.NewValidationError("external subscription id is required")
	}

	sub, err := s.subscriptionRepo.GetByExternalID(ctx, cmd.ExternalSubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		sub, err = s.pendingFor(ctx, cmd.Owner)
		if err != nil {
			return nil, err
		}
	}
	if sub == nil {
		s.logger.Warnw("no subscription to activate",
			"external_subscription_id", cmd.ExternalSubscriptionID,
			"account_id", cmd.Owner.AccountID,
		)
		return nil, errors.NewNotFoundError("subscription not found", cmd.ExternalSubscriptionID)
	}

	if sub.Status == subscription.StatusCanceled {
		s.logger.Infow("activation of canceled subscription skipped",
			"subscription_id", sub.ID,
			"external_subscription_id", cmd.ExternalSubscriptionID,
		)
		return sub, nil
	}
	if !sub.Activate(cmd.ExternalSubscriptionID, cmd.PeriodStart, cmd.PeriodEnd, biztime.NowUTC()) {
		s.logger.Debugw("activation replay ignored", "subscription_id", sub.ID)
		return sub, nil
	}

	err = s.subscriptionRepo.Update(ctx, sub)
	if stderrors.Is(err, subscription.ErrExternalIDTaken) {
		// a concurrent activation attached the handle first
		winner, rerr := s.subscriptionRepo.GetByExternalID(ctx, cmd.ExternalSubscriptionID)
		if rerr != nil {
			return nil, rerr
		}
		if winner == nil {
			return nil, err
		}
		if winner.Activate(cmd.ExternalSubscriptionID, cmd.PeriodStart, cmd.PeriodEnd, biztime.NowUTC()) {
			if uerr := s.subscriptionRepo.Update(ctx, winner); uerr != nil {
				return nil, uerr
			}
		}
		return winner, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Infow("subscription activated",
		"subscription_id", sub.ID,
		"external_subscription_id", cmd.ExternalSubscriptionID,
		"period_end", sub.CurrentPeriodEnd,
	)
	return sub, nil
}

func (s *LedgerService) pendingFor(ctx context.Context, owner subscription.OwnerRef) (*subscription.Subscription, error) {
	if owner.AccountID == "" || owner.AccountKind == "" {
		return nil, nil
	}
	kind, err := account.ParseRole(owner.AccountKind)
	if err != nil {
		return nil, err
	}
	return s.subscriptionRepo.GetLatestInactive(ctx, kind, owner.AccountID)
}

// RecordPayment stores a COMPLETED payment once per external payment id.
func (s *LedgerService) RecordPayment(ctx context.Context, cmd RecordPaymentCommand) (*payment.Payment, error) {
	p, err := payment.NewCompleted(cmd.SubscriptionID, cmd.Amount, cmd.Currency, cmd.ExternalPaymentID, cmd.PaidAt)
	if err != nil {
		return nil, err
	}
	return s.insertPayment(ctx, p)
}

// RecordFailedPayment stores a FAILED payment and moves the subscription to PAST_DUE.
func (s *LedgerService) RecordFailedPayment(ctx context.Context, cmd RecordFailedPaymentCommand) (*payment.Payment, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found", cmd.SubscriptionID)
	}

	p, err := payment.NewFailed(cmd.SubscriptionID, cmd.Amount, cmd.Currency, cmd.ExternalPaymentID, cmd.FailureReason, biztime.NowUTC())
	if err != nil {
		return nil, err
	}
	recorded, err := s.insertPayment(ctx, p)
	if err != nil {
		return nil, err
	}

	if sub.MarkPastDue(biztime.NowUTC()) {
		if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
			return nil, err
		}
		s.logger.Warnw("subscription past due", "subscription_id", sub.ID, "reason", cmd.FailureReason)
	}
	return recorded, nil
}

func (s *LedgerService) insertPayment(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	err := s.paymentRepo.Create(ctx, p)
	if err == nil {
		s.logger.Infow("payment recorded",
			"payment_id", p.ID,
			"subscription_id", p.SubscriptionID,
			"status", p.Status,
			"amount", p.Amount,
			"currency", p.Currency,
		)
		return p, nil
	}
	if !stderrors.Is(err, payment.ErrDuplicateExternalID) {
		return nil, err
	}

	s.logger.Infow("payment already recorded", "external_payment_id", p.ExternalPaymentID)
	existing, err := s.paymentRepo.GetByExternalID(ctx, p.ExternalPaymentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("payment %s reported duplicate but not found", p.ExternalPaymentID)
	}
	return existing, nil
}

// CheckCustomerCapacity reports whether ownerKind/ownerID may take on another customer.
func (s *LedgerService) CheckCustomerCapacity(ctx context.Context, ownerKind account.Role, ownerID string) (subscription.Capacity, error) {
	if !ownerKind.IsValid() {
		return subscription.Capacity{}, errors.NewUnknownRoleError(string(ownerKind))
	}
	if !account.IsBillable(ownerKind) {
		return subscription.EvaluateCapacity(ownerKind, nil, nil, 0), nil
	}

	current, err := s.customers.CountCustomers(ctx, ownerKind, ownerID)
	if err != nil {
		return subscription.Capacity{}, err
	}
	sub, err := s.subscriptionRepo.GetCurrent(ctx, ownerKind, ownerID)
	if err != nil {
		return subscription.Capacity{}, err
	}

	var plan *subscription.Plan
	if sub != nil {
		if plan, err = s.planRepo.GetByID(ctx, sub.PlanID); err != nil {
			return subscription.Capacity{}, err
		}
	}
	return subscription.EvaluateCapacity(ownerKind, sub, plan, current), nil
}
