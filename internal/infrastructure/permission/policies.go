package permission

import (
	"fmt"

	"github.com/dietdesk/dietdesk/internal/domain/account"
)

// Resources and actions used by the HTTP gate.
const (
	ResourceAccounts      = "accounts"
	ResourcePlans         = "plans"
	ResourceSubscriptions = "subscriptions"
	ResourceDashboard     = "dashboard"

	ActionCreate      = "create"
	ActionRead        = "read"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionManage      = "manage"
	ActionImpersonate = "impersonate"
)

// Each role inherits from the one below it.
var roleInheritance = [][2]account.Role{
	{account.RoleSuperAdmin, account.RoleAdmin},
	{account.RoleAdmin, account.RoleTrainer},
	{account.RoleTrainer, account.RoleCustomer},
}

var defaultPolicies = [][3]string{
	// Customers read and edit their own profile.
	{string(account.RoleCustomer), ResourceAccounts, ActionRead},
	{string(account.RoleCustomer), ResourceAccounts, ActionUpdate},

	{string(account.RoleTrainer), ResourceAccounts, ActionCreate},
	{string(account.RoleTrainer), ResourceAccounts, ActionDelete},
	{string(account.RoleTrainer), ResourceAccounts, ActionManage},
	{string(account.RoleTrainer), ResourceAccounts, ActionImpersonate},
	{string(account.RoleTrainer), ResourceSubscriptions, ActionRead},
	{string(account.RoleTrainer), ResourceSubscriptions, ActionManage},
	{string(account.RoleTrainer), ResourceDashboard, ActionRead},

	{string(account.RoleSuperAdmin), ResourcePlans, ActionManage},
}

// SeedDefaults installs the built-in policies. Existing rows are left alone.
func (e *Enforcer) SeedDefaults() error {
	for _, link := range roleInheritance {
		if err := e.Inherit(string(link[0]), string(link[1])); err != nil {
			return err
		}
	}
	for _, p := range defaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	e.logger.Infow("default permissions seeded", "policies", len(defaultPolicies))
	return nil
}
