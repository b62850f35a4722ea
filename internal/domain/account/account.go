package account

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/id"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// Account is the common shape of all four kinds.
type Account struct {
	ID           string
	Role         Role
	Email        string
	Name         string
	PasswordHash string
	Status       Status
	// ParentID is empty for SUPER_ADMIN and for self-registered admins.
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var idPrefixes = map[Role]string{
	RoleSuperAdmin: id.PrefixSuperAdmin,
	RoleAdmin:      id.PrefixAdmin,
	RoleTrainer:    id.PrefixTrainer,
	RoleCustomer:   id.PrefixCustomer,
}

// NewAccount builds a new ACTIVE account with a fresh id for role.
func NewAccount(role Role, email, name, passwordHash, parentID string) (*Account, error) {
	if !role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(role))
	}
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	name = utils.CleanDisplayName(name)
	if name == "" {
		return nil, errors.NewValidationError("name is required")
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("password is required")
	}
	if role == RoleSuperAdmin && parentID != "" {
		return nil, errors.NewValidationError("super admin accounts have no parent")
	}

	accountID, err := id.New(idPrefixes[role])
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Account{
		ID:           accountID,
		Role:         role,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Status:       StatusActive,
		ParentID:     parentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// EffectiveStatus is what callers see: kinds without a settable status are
// always ACTIVE, and SUSPENDED reads as INACTIVE.
func (a *Account) EffectiveStatus() Status {
	if !HasSettableStatus(a.Role) {
		return StatusActive
	}
	return a.Status.Normalize()
}

func (a *Account) IsActive() bool {
	return a.EffectiveStatus().IsActive()
}

// Principal returns the guard view of this account.
func (a *Account) Principal() Principal {
	return Principal{ID: a.ID, Role: a.Role, Status: a.EffectiveStatus()}
}

// Patch lists the mutable fields; nil means unchanged.
type Patch struct {
	Email  *string
	Name   *string
	Status *Status
}

func (p Patch) IsEmpty() bool {
	return p.Email == nil && p.Name == nil && p.Status == nil
}
