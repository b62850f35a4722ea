package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/mappers"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/db"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// accountTable describes how one account kind is stored.
type accountTable struct {
	table     string
	hasStatus bool
	hasParent bool
	empty     func() any
	toModel   func(a *account.Account) any
}

func (t accountTable) columns() []string {
	cols := []string{"id", "email", "name", "password_hash", "created_at", "updated_at"}
	if t.hasStatus {
		cols = append(cols, "status")
	}
	if t.hasParent {
		cols = append(cols, "parent_id")
	}
	return cols
}

var accountTables = map[account.Role]accountTable{
	account.RoleSuperAdmin: {
		table:   constants.TableSuperAdmins,
		empty:   func() any { return &models.SuperAdminModel{} },
		toModel: mappers.SuperAdminToModel,
	},
	account.RoleAdmin: {
		table:     constants.TableAdmins,
		hasStatus: true,
		hasParent: true,
		empty:     func() any { return &models.AdminModel{} },
		toModel:   mappers.AdminToModel,
	},
	account.RoleTrainer: {
		table:     constants.TableTrainers,
		hasStatus: true,
		hasParent: true,
		empty:     func() any { return &models.TrainerModel{} },
		toModel:   mappers.TrainerToModel,
	},
	account.RoleCustomer: {
		table:     constants.TableCustomers,
		hasParent: true,
		empty:     func() any { return &models.CustomerModel{} },
		toModel:   mappers.CustomerToModel,
	},
}

// AccountRepository stores the four account kinds in their own tables behind one interface.
type AccountRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAccountRepository(db *gorm.DB, logger logger.Interface) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

func tableFor(role account.Role) (accountTable, error) {
	t, ok := accountTables[role]
	if !ok {
		return accountTable{}, errors.NewUnknownRoleError(string(role))
	}
	return t, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	t, err := tableFor(a.Role)
	if err != nil {
		return err
	}
	a.Email = utils.NormalizeEmail(a.Email)

	existing, err := r.FindByEmail(ctx, a.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.NewDuplicateEmailError(a.Email)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(t.toModel(a)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewDuplicateEmailError(a.Email)
		}
		r.logger.Errorw("failed to create account", "role", a.Role, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Infow("account created", "role", a.Role, "id", a.ID)
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	for _, role := range account.AllRoles {
		found, err := r.findOne(ctx, role, "email = ?", email)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, role account.Role, id string) (*account.Account, error) {
	if _, err := tableFor(role); err != nil {
		return nil, err
	}
	return r.findOne(ctx, role, "id = ?", id)
}

func (r *AccountRepository) findOne(ctx context.Context, role account.Role, query string, arg any) (*account.Account, error) {
	t := accountTables[role]
	var row mappers.AccountRow
	err := db.GetTxFromContext(ctx, r.db).
		Table(t.table).
		Select(t.columns()).
		Where(query, arg).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to query account", "role", role, "error", err)
		return nil, fmt.Errorf("failed to query %s: %w", t.table, err)
	}
	return mappers.AccountToDomain(role, &row), nil
}

func (r *AccountRepository) Update(ctx context.Context, role account.Role, id string, patch account.Patch) (*account.Account, error) {
	t, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && !t.hasStatus {
		return nil, errors.NewUnsupportedOperationError(fmt.Sprintf("%s accounts have no settable status", role))
	}

	current, err := r.FindByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.NewNotFoundError("account not found", id)
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updates := map[string]any{"updated_at": biztime.NowUTC()}
	if patch.Email != nil {
		email := utils.NormalizeEmail(*patch.Email)
		if email == "" {
			return nil, errors.NewValidationError("email is required")
		}
		if email != current.Email {
			clash, err := r.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if clash != nil && (clash.ID != id || clash.Role != role) {
				return nil, errors.NewDuplicateEmailError(email)
			}
		}
		updates["email"] = email
	}
	if patch.Name != nil {
		name := utils.CleanDisplayName(*patch.Name)
		if name == "" {
			return nil, errors.NewValidationError("name is required")
		}
		updates["name"] = name
	}
	if patch.Status != nil {
		updates["status"] = string(patch.Status.Normalize())
	}

	result := db.GetTxFromContext(ctx, r.db).Table(t.table).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return nil, errors.NewDuplicateEmailError(fmt.Sprint(updates["email"]))
		}
		r.logger.Errorw("failed to update account", "role", role, "id", id, "error", result.Error)
		return nil, fmt.Errorf("failed to update account: %w", result.Error)
	}

	updated, err := r.FindByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("account not found", id)
	}
	return updated, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, role account.Role, id string, passwordHash string) error {
	t, err := tableFor(role)
	if err != nil {
		return err
	}
	result := db.GetTxFromContext(ctx, r.db).Table(t.table).Where("id = ?", id).Updates(map[string]any{
		"password_hash": passwordHash,
		"updated_at":    biztime.NowUTC(),
	})
	if result.Error != nil {
		r.logger.Errorw("failed to update password", "role", role, "id", id, "error", result.Error)
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("account not found", id)
	}
	return nil
}

func (r *AccountRepository) CountChildren(ctx context.Context, role account.Role, id string) (int64, error) {
	if _, err := tableFor(role); err != nil {
		return 0, err
	}
	child, ok := account.ChildRole(role)
	if !ok {
		return 0, nil
	}
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Table(accountTables[child].table).
		Where("parent_id = ?", id).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count children", "role", role, "id", id, "error", err)
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) CountCustomers(ctx context.Context, role account.Role, id string) (int64, error) {
	switch role {
	case account.RoleTrainer, account.RoleAdmin:
		return r.CountByRole(ctx, account.RoleCustomer, account.Scope{Role: role, ID: id})
	case account.RoleSuperAdmin, account.RoleCustomer:
		return 0, nil
	}
	return 0, errors.NewUnknownRoleError(string(role))
}

// CountByRole counts role accounts below scope. Unrelated scopes count zero.
func (r *AccountRepository) CountByRole(ctx context.Context, role account.Role, scope account.Scope) (int64, error) {
	t, err := tableFor(role)
	if err != nil {
		return 0, err
	}
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Table(t.table)

	if !scope.IsGlobal() && scope.Role != account.RoleSuperAdmin {
		parentRole, ok := account.ParentRole(role)
		if !ok {
			return 0, nil
		}
		switch {
		case parentRole == scope.Role:
			query = query.Where("parent_id = ?", scope.ID)
		case role == account.RoleCustomer && scope.Role == account.RoleAdmin:
			trainers := tx.Table(constants.TableTrainers).Select("id").Where("parent_id = ?", scope.ID)
			query = query.Where("parent_id IN (?)", trainers)
		default:
			return 0, nil
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count accounts", "role", role, "error", err)
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) Delete(ctx context.Context, role account.Role, id string) error {
	t, err := tableFor(role)
	if err != nil {
		return err
	}
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(t.empty())
	if result.Error != nil {
		r.logger.Errorw("failed to delete account", "role", role, "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("account not found", id)
	}
	r.logger.Infow("account deleted", "role", role, "id", id)
	return nil
}

func (r *AccountRepository) List(ctx context.Context, filter account.ListFilter) ([]*account.Account, int64, error) {
	t, err := tableFor(filter.Role)
	if err != nil {
		return nil, 0, err
	}

	query := db.GetTxFromContext(ctx, r.db).Table(t.table)
	if filter.ParentID != "" && t.hasParent {
		query = query.Where("parent_id = ?", filter.ParentID)
	}
	if filter.Status != "" {
		switch {
		case !t.hasStatus && filter.Status.Normalize() != account.StatusActive:
			return []*account.Account{}, 0, nil
		case t.hasStatus && filter.Status.Normalize() == account.StatusInactive:
			query = query.Where("status IN ?", []string{string(account.StatusInactive), string(account.StatusSuspended)})
		case t.hasStatus:
			query = query.Where("status = ?", string(filter.Status))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count accounts", "role", filter.Role, "error", err)
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	var rows []mappers.AccountRow
	if err := query.Select(t.columns()).
		Scopes(db.NewestFirst(), db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list accounts", "role", filter.Role, "error", err)
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*account.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, mappers.AccountToDomain(filter.Role, &rows[i]))
	}
	return accounts, total, nil
}
