// Package account holds the four-level account hierarchy, the authorization
// guard evaluated before every mutation, and the repository contract.
package account

import (
	"strings"

	"github.com/dietdesk/dietdesk/internal/shared/errors"
)

// Role tags both an account's privilege and its kind (one table per kind).
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleTrainer    Role = "TRAINER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// AllRoles lists roles in email-probe order: highest privilege first.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleTrainer, RoleCustomer}

var ranks = map[Role]int{
	RoleCustomer:   0,
	RoleTrainer:    1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := ranks[r]
	return ok
}

// ParseRole accepts any casing and "-" or "_" separators ("super-admin").
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !r.IsValid() {
		return "", errors.NewUnknownRoleError(s)
	}
	return r, nil
}

// Rank returns the position of r in the total order CUSTOMER < TRAINER < ADMIN < SUPER_ADMIN.
func Rank(r Role) (int, error) {
	rank, ok := ranks[r]
	if !ok {
		return 0, errors.NewUnknownRoleError(string(r))
	}
	return rank, nil
}

// CanCreate reports whether actor may create an account of role target.
func CanCreate(actor, target Role) bool {
	if !actor.IsValid() || !target.IsValid() {
		return false
	}
	switch actor {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return target == RoleTrainer
	case RoleTrainer:
		return target == RoleCustomer
	default:
		return false
	}
}

// AtLeast reports whether actor ranks at or above minimum. Unknown roles never do.
func AtLeast(actor, minimum Role) bool {
	a, err := Rank(actor)
	if err != nil {
		return false
	}
	m, err := Rank(minimum)
	if err != nil {
		return false
	}
	return a >= m
}

// ParentRole is the role of the account that owns r; SUPER_ADMIN has none.
func ParentRole(r Role) (Role, bool) {
	switch r {
	case RoleAdmin:
		return RoleSuperAdmin, true
	case RoleTrainer:
		return RoleAdmin, true
	case RoleCustomer:
		return RoleTrainer, true
	}
	return "", false
}

// ChildRole is the role of accounts owned by r; CUSTOMER has none.
func ChildRole(r Role) (Role, bool) {
	switch r {
	case RoleSuperAdmin:
		return RoleAdmin, true
	case RoleAdmin:
		return RoleTrainer, true
	case RoleTrainer:
		return RoleCustomer, true
	}
	return "", false
}

// HasSettableStatus is true for the kinds that can be suspended.
func HasSettableStatus(r Role) bool {
	return r == RoleAdmin || r == RoleTrainer
}

// IsBillable is true for kinds that hold a subscription of their own.
func IsBillable(r Role) bool {
	return r == RoleAdmin || r == RoleTrainer
}
