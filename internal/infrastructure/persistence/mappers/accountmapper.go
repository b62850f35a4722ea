package mappers

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/persistence/models"
)

// AccountRow is the kind-agnostic scan target. Columns a table lacks stay nil.
type AccountRow struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Status       *string
	ParentID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func AccountToDomain(role account.Role, row *AccountRow) *account.Account {
	if row == nil {
		return nil
	}
	a := &account.Account{
		ID:           row.ID,
		Role:         role,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Status:       account.StatusActive,
		ParentID:     derefString(row.ParentID),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.Status != nil {
		a.Status = account.Status(*row.Status).Normalize()
	}
	return a
}

func accountColumns(a *account.Account) models.AccountColumns {
	return models.AccountColumns{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func SuperAdminToModel(a *account.Account) any {
	return &models.SuperAdminModel{AccountColumns: accountColumns(a)}
}

func AdminToModel(a *account.Account) any {
	return &models.AdminModel{
		AccountColumns: accountColumns(a),
		Status:         string(a.Status.Normalize()),
		ParentID:       optionalString(a.ParentID),
	}
}

func TrainerToModel(a *account.Account) any {
	return &models.TrainerModel{
		AccountColumns: accountColumns(a),
		Status:         string(a.Status.Normalize()),
		ParentID:       optionalString(a.ParentID),
	}
}

func CustomerToModel(a *account.Account) any {
	return &models.CustomerModel{
		AccountColumns: accountColumns(a),
		ParentID:       optionalString(a.ParentID),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
