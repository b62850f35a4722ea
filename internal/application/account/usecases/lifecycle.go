package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

// BulkItem names one account and the lifecycle action to apply to it.
type BulkItem struct {
	ID     string
	Kind   string
	Action string
}

// LifecycleService suspends, reactivates and deletes accounts under the guard.
type LifecycleService struct {
	accountRepo account.Repository
	billing     OwnedBilling
	payments    PaymentPurger
	txRunner    db.TxRunner
	logger      logger.Interface
}

func NewLifecycleService(
	accountRepo account.Repository,
	billing OwnedBilling,
	payments PaymentPurger,
	txRunner db.TxRunner,
	logger logger.Interface,
) *LifecycleService {
	return &LifecycleService{
		accountRepo: accountRepo,
		billing:     billing,
		payments:    payments,
		txRunner:    txRunner,
		logger:      logger,
	}
}

func (s *LifecycleService) Suspend(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	return s.setStatus(ctx, actor, account.ActionSuspend, role, id, account.StatusInactive)
}

func (s *LifecycleService) Activate(ctx context.Context, actor account.Principal, role account.Role, id string) (*account.Account, error) {
	return s.setStatus(ctx, actor, account.ActionActivate, role, id, account.StatusActive)
}

func (s *LifecycleService) setStatus(ctx context.Context, actor account.Principal, action account.Action, role account.Role, id string, status account.Status) (*account.Account, error) {
	if !role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(role))
	}
	// SUPER_ADMIN targets are left to the guard, which refuses them.
	if role == account.RoleCustomer {
		return nil, errors.NewUnsupportedOperationError(fmt.Sprintf("%s accounts have a fixed status", role))
	}
	actor, err := resolveActor(ctx, s.accountRepo, actor)
	if err != nil {
		return nil, err
	}
	target, err := loadTarget(ctx, s.accountRepo, role, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeAction(ctx, s.accountRepo, action, actor, target); err != nil {
		return nil, err
	}
	if !account.HasSettableStatus(role) {
		return nil, errors.NewUnsupportedOperationError(fmt.Sprintf("%s accounts have a fixed status", role))
	}

	updated, err := s.accountRepo.Update(ctx, role, id, account.Patch{Status: &status})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("account status changed", "id", id, "role", role, "status", status, "actor_id", actor.ID)
	return updated, nil
}

// Delete removes an account without children, together with its subscriptions
// and their payments, in one transaction.
func (s *LifecycleService) Delete(ctx context.Context, actor account.Principal, role account.Role, id string) error {
	actor, err := resolveActor(ctx, s.accountRepo, actor)
	if err != nil {
		return err
	}
	target, err := loadTarget(ctx, s.accountRepo, role, id)
	if err != nil {
		return err
	}
	if err := authorizeAction(ctx, s.accountRepo, account.ActionDelete, actor, target); err != nil {
		return err
	}

	err = s.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		children, err := s.accountRepo.CountChildren(txCtx, role, id)
		if err != nil {
			return err
		}
		if children > 0 {
			childRole, _ := account.ChildRole(role)
			return errors.NewHasDependentsError(kindName(role), kindName(childRole), children)
		}

		if account.IsBillable(role) {
			subscriptionIDs, err := s.billing.ListIDsByOwner(txCtx, role, id)
			if err != nil {
				return err
			}
			if len(subscriptionIDs) > 0 {
				if _, err := s.payments.DeleteBySubscriptionIDs(txCtx, subscriptionIDs); err != nil {
					return err
				}
				if _, err := s.billing.DeleteByOwner(txCtx, role, id); err != nil {
					return err
				}
			}
		}

		return s.accountRepo.Delete(txCtx, role, id)
	})
	if err != nil {
		if !errors.IsAppError(err) {
			s.logger.Errorw("account delete rolled back", "id", id, "role", role, "error", err)
		}
		return err
	}

	s.logger.Infow("account deleted with billing records", "id", id, "role", role, "actor_id", actor.ID)
	return nil
}

// Bulk applies items in order. One item failing does not stop the rest.
func (s *LifecycleService) Bulk(ctx context.Context, actor account.Principal, items []BulkItem) *dto.BulkResultDTO {
	result := &dto.BulkResultDTO{
		Total:   len(items),
		Results: make([]*dto.BulkItemResultDTO, 0, len(items)),
	}

	for _, item := range items {
		outcome := &dto.BulkItemResultDTO{ID: item.ID, Kind: item.Kind, Action: item.Action}
		if err := s.applyBulkItem(ctx, actor, item); err != nil {
			outcome.Message = err.Error()
			if appErr := errors.GetAppError(err); appErr != nil {
				outcome.ErrorType = string(appErr.Type)
				outcome.Reason = appErr.Reason
				outcome.Message = appErr.Message
			} else {
				outcome.ErrorType = string(errors.ErrorTypeInternal)
			}
			result.Failed++
		} else {
			outcome.Success = true
			result.Succeeded++
		}
		result.Results = append(result.Results, outcome)
	}

	s.logger.Infow("bulk lifecycle applied", "actor_id", actor.ID, "total", result.Total, "failed", result.Failed)
	return result
}

func (s *LifecycleService) applyBulkItem(ctx context.Context, actor account.Principal, item BulkItem) error {
	role, err := account.ParseRole(item.Kind)
	if err != nil {
		return err
	}
	action, err := account.ParseAction(item.Action)
	if err != nil {
		return err
	}
	switch action {
	case account.ActionSuspend:
		_, err = s.Suspend(ctx, actor, role, item.ID)
	case account.ActionActivate:
		_, err = s.Activate(ctx, actor, role, item.ID)
	case account.ActionDelete:
		err = s.Delete(ctx, actor, role, item.ID)
	default:
		err = errors.NewValidationError("bulk supports suspend, activate and delete", item.Action)
	}
	return err
}

// kindName renders a role for messages, e.g. "super admin".
func kindName(role account.Role) string {
	return strings.ReplaceAll(strings.ToLower(string(role)), "_", " ")
}
