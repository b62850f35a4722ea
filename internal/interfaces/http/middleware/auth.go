package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// TokenVerifier parses and validates a signed token.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth accepts only access tokens from the Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err == nil && claims.TokenType != auth.TokenTypeAccess {
			err = stderrors.New("not an access token")
		}
		if err != nil {
			m.reject(c, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, cause error) {
	appErr := errors.NewTokenInvalidError("access")
	if stderrors.Is(cause, jwt.ErrTokenExpired) {
		appErr = errors.NewTokenExpiredError("access")
	}
	if errors.IsSecurityEvent(appErr) {
		m.logger.Warnw("rejected access token", "client_ip", c.ClientIP(), "path", c.Request.URL.Path, "error", cause)
	} else {
		m.logger.Debugw("rejected access token", "error", cause)
	}
	utils.ErrorResponseWithError(c, appErr)
	c.Abort()
}

// OptionalAuth sets the caller when a valid access token is present and never rejects.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			claims, err := m.verifier.Verify(token)
			if err == nil && claims.TokenType == auth.TokenTypeAccess {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyAccountID, claims.AccountID)
	c.Set(constants.ContextKeyAccountKind, string(claims.Role))
	c.Set(constants.ContextKeySessionID, claims.SessionID)
	if claims.ImpersonatorID != "" {
		c.Set(constants.ContextKeyImpersonatorID, claims.ImpersonatorID)
	}
}
