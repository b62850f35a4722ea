package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// PolicyEnforcer answers whether a role may perform action on resource.
type PolicyEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyAccountKind)
		if role == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("not authenticated"))
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Debugw("permission denied",
				"account_id", c.GetString(constants.ContextKeyAccountID),
				"role", role, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInsufficientPermissionsError("route_forbidden", "insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
