package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
)

// currentActor reads the caller set by the auth middleware.
func currentActor(c *gin.Context) (account.Principal, error) {
	id := c.GetString(constants.ContextKeyAccountID)
	kind := c.GetString(constants.ContextKeyAccountKind)
	if id == "" || kind == "" {
		return account.Principal{}, errors.NewUnauthorizedError("not authenticated")
	}
	role, err := account.ParseRole(kind)
	if err != nil {
		return account.Principal{}, err
	}
	return account.Principal{ID: id, Role: role}, nil
}

// targetParams reads the :kind and :id path segments.
func targetParams(c *gin.Context) (account.Role, string, error) {
	role, err := account.ParseRole(c.Param("kind"))
	if err != nil {
		return "", "", err
	}
	id := c.Param("id")
	if id == "" {
		return "", "", errors.NewValidationError("account id is required")
	}
	return role, id, nil
}
