package account

import (
	"fmt"

	"github.com/dietdesk/dietdesk/internal/shared/errors"
)

// Action is a guarded operation on an existing account.
type Action string

const (
	ActionUpdate        Action = "update"
	ActionSuspend       Action = "suspend"
	ActionActivate      Action = "activate"
	ActionDelete        Action = "delete"
	ActionResetPassword Action = "reset_password"
	ActionImpersonate   Action = "impersonate"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionUpdate, ActionSuspend, ActionActivate, ActionDelete, ActionResetPassword, ActionImpersonate:
		return a, nil
	}
	return "", errors.NewValidationError("unknown action", s)
}

// Denial reason codes.
const (
	ReasonUnknownRole           = "unknown_role"
	ReasonActorNotActive        = "actor_not_active"
	ReasonCreateNotPermitted    = "create_not_permitted"
	ReasonPeerSuperAdmin        = "peer_super_admin"
	ReasonImpersonateSuperAdmin = "impersonate_super_admin"
	ReasonStatusNotSettable     = "status_not_settable"
	ReasonRankNotHigher         = "rank_not_higher"
	ReasonTargetNotActive       = "target_not_active"
	ReasonOutsideHierarchy      = "outside_hierarchy"
)

// Principal is the guard's view of an account.
type Principal struct {
	ID     string
	Role   Role
	Status Status
}

func deny(reason, format string, args ...any) error {
	return errors.NewInsufficientPermissionsError(reason, fmt.Sprintf(format, args...))
}

// CheckCreate allows actor to create target-role accounts per CanCreate.
func CheckCreate(actor Principal, target Role) error {
	if !actor.Role.IsValid() {
		return errors.NewUnknownRoleError(string(actor.Role))
	}
	if !target.IsValid() {
		return errors.NewUnknownRoleError(string(target))
	}
	if !actor.Status.Normalize().IsActive() {
		return deny(ReasonActorNotActive, "%s account is not active", actor.Role)
	}
	if !CanCreate(actor.Role, target) {
		return deny(ReasonCreateNotPermitted, "%s may not create %s accounts", actor.Role, target)
	}
	return nil
}

// CheckAction decides whether actor may perform action on target. Rules,
// first match wins:
//   - both roles must be known and the actor ACTIVE
//   - an actor may update its own profile
//   - a SUPER_ADMIN never administers another SUPER_ADMIN
//   - SUPER_ADMIN targets cannot be impersonated
//   - only ADMIN and TRAINER targets can be suspended or activated
//   - the actor must rank strictly above the target
//   - impersonation needs an ACTIVE target
func CheckAction(action Action, actor, target Principal) error {
	if !actor.Role.IsValid() {
		return errors.NewUnknownRoleError(string(actor.Role))
	}
	if !target.Role.IsValid() {
		return errors.NewUnknownRoleError(string(target.Role))
	}
	if !actor.Status.Normalize().IsActive() {
		return deny(ReasonActorNotActive, "%s account is not active", actor.Role)
	}

	if action == ActionUpdate && actor.ID != "" && actor.ID == target.ID && actor.Role == target.Role {
		return nil
	}

	if actor.Role == RoleSuperAdmin && target.Role == RoleSuperAdmin {
		return deny(ReasonPeerSuperAdmin, "super admins cannot %s other super admins", action)
	}

	if action == ActionImpersonate && target.Role == RoleSuperAdmin {
		return deny(ReasonImpersonateSuperAdmin, "super admin accounts cannot be impersonated")
	}

	if (action == ActionSuspend || action == ActionActivate) && !HasSettableStatus(target.Role) {
		return deny(ReasonStatusNotSettable, "%s accounts have a fixed status", target.Role)
	}

	actorRank, _ := Rank(actor.Role)
	targetRank, _ := Rank(target.Role)
	if actorRank <= targetRank {
		return deny(ReasonRankNotHigher, "%s may not %s a %s account", actor.Role, action, target.Role)
	}

	if action == ActionImpersonate && !target.Status.Normalize().IsActive() {
		return deny(ReasonTargetNotActive, "only active accounts can be impersonated")
	}

	return nil
}

// CheckScope requires target to sit below actor in the ownership tree.
// Super admins see the whole tree. ancestors holds target's parent chain,
// nearest first.
func CheckScope(actor Principal, ancestors []string) error {
	if actor.Role == RoleSuperAdmin {
		return nil
	}
	for _, ancestorID := range ancestors {
		if ancestorID == actor.ID {
			return nil
		}
	}
	return deny(ReasonOutsideHierarchy, "account is outside your hierarchy")
}
