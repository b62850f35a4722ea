package usecases

import (
	"context"
	"fmt"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type CreateAccountCommand struct {
	Actor    account.Principal
	Role     account.Role
	Email    string
	Name     string
	Password string
	// ParentID is required when the actor is not itself the parent kind.
	ParentID string
	// PlanID optionally attaches a subscription to a new ADMIN or TRAINER.
	PlanID string
}

type CreateAccountResult struct {
	Account *account.Account
	// TemporaryPassword is set only when the password was generated.
	TemporaryPassword string
}

type CreateAccountUseCase struct {
	accountRepo      account.Repository
	ledger           SubscriptionLedger
	hasher           PasswordHasher
	generatePassword PasswordGenerator
	notifier         Notifier
	logger           logger.Interface
}

func NewCreateAccountUseCase(
	accountRepo account.Repository,
	ledger SubscriptionLedger,
	hasher PasswordHasher,
	generatePassword PasswordGenerator,
	notifier Notifier,
	logger logger.Interface,
) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo:      accountRepo,
		ledger:           ledger,
		hasher:           hasher,
		generatePassword: generatePassword,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *CreateAccountUseCase) Execute(ctx context.Context, cmd CreateAccountCommand) (*CreateAccountResult, error) {
	actor, err := resolveActor(ctx, uc.accountRepo, cmd.Actor)
	if err != nil {
		return nil, err
	}
	if err := account.CheckCreate(actor, cmd.Role); err != nil {
		return nil, err
	}
	if cmd.PlanID != "" && !account.IsBillable(cmd.Role) {
		return nil, errors.NewValidationError(fmt.Sprintf("%s accounts do not hold subscriptions", cmd.Role))
	}

	parentID, err := uc.resolveParent(ctx, actor, cmd.Role, cmd.ParentID)
	if err != nil {
		return nil, err
	}

	if cmd.Role == account.RoleCustomer {
		if err := uc.checkCustomerCapacity(ctx, parentID); err != nil {
			return nil, err
		}
	}

	password, temporary := cmd.Password, ""
	if password == "" {
		if password, err = uc.generatePassword(); err != nil {
			uc.logger.Errorw("failed to generate password", "error", err)
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		temporary = password
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, errors.NewValidationError("invalid password", err.Error())
	}

	created, err := account.NewAccount(cmd.Role, cmd.Email, cmd.Name, hash, parentID)
	if err != nil {
		return nil, err
	}
	if err := uc.accountRepo.Create(ctx, created); err != nil {
		return nil, err
	}

	if cmd.PlanID != "" {
		if _, err := uc.ledger.Create(ctx, created.Role, created.ID, cmd.PlanID, ""); err != nil {
			uc.logger.Warnw("account created without subscription", "id", created.ID, "plan_id", cmd.PlanID, "error", err)
		}
	}

	if err := uc.notifier.SendWelcomeEmail(created.Email, created.Name, string(created.Role), temporary); err != nil {
		uc.logger.Warnw("failed to send welcome email", "id", created.ID, "error", err)
	}

	uc.logger.Infow("account created", "id", created.ID, "role", created.Role, "parent_id", parentID, "actor_id", actor.ID)
	return &CreateAccountResult{Account: created, TemporaryPassword: temporary}, nil
}

// resolveParent defaults the parent to the actor when the actor is the parent kind.
// Otherwise the named parent must exist with the right kind and sit inside the actor's subtree.
func (uc *CreateAccountUseCase) resolveParent(ctx context.Context, actor account.Principal, role account.Role, requested string) (string, error) {
	parentRole, ok := account.ParentRole(role)
	if !ok {
		return "", nil
	}
	if actor.Role == parentRole {
		if requested != "" && requested != actor.ID {
			return "", errors.NewValidationError("parent_id must be your own account", requested)
		}
		return actor.ID, nil
	}
	if requested == "" {
		return "", errors.NewValidationError(fmt.Sprintf("parent_id of a %s is required", parentRole))
	}

	parent, err := uc.accountRepo.FindByID(ctx, parentRole, requested)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", errors.NewNotFoundError(fmt.Sprintf("parent %s not found", parentRole), requested)
	}
	ancestors, err := ancestorsOf(ctx, uc.accountRepo, parent)
	if err != nil {
		return "", err
	}
	if err := account.CheckScope(actor, append([]string{parent.ID}, ancestors...)); err != nil {
		return "", err
	}
	return parent.ID, nil
}

// checkCustomerCapacity admits one more customer under trainerID. Every
// subscription on the trainer and its admin must have room. A trainer without
// a subscription of its own draws on its admin's, and at least one of the two
// must hold one.
func (uc *CreateAccountUseCase) checkCustomerCapacity(ctx context.Context, trainerID string) error {
	trainerCap, err := uc.ledger.CheckCustomerCapacity(ctx, account.RoleTrainer, trainerID)
	if err != nil {
		return err
	}
	if trainerCap.Subscribed && !trainerCap.Allowed {
		return errors.NewCapacityExceededError("trainer cannot take more customers", trainerID)
	}

	trainer, err := uc.accountRepo.FindByID(ctx, account.RoleTrainer, trainerID)
	if err != nil {
		return err
	}
	if trainer == nil {
		return errors.NewNotFoundError("trainer not found", trainerID)
	}

	covered := trainerCap.Subscribed
	if trainer.ParentID != "" {
		adminCap, err := uc.ledger.CheckCustomerCapacity(ctx, account.RoleAdmin, trainer.ParentID)
		if err != nil {
			return err
		}
		if adminCap.Subscribed && !adminCap.Allowed {
			return errors.NewCapacityExceededError("admin plan cannot take more customers", trainer.ParentID)
		}
		covered = covered || adminCap.Subscribed
	}
	if !covered {
		return errors.NewCapacityExceededError("no subscription covers this trainer", trainerID)
	}
	return nil
}
