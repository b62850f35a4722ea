package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

type AuthHandler struct {
	loginUC        loginUseCase
	refreshTokenUC refreshTokenUseCase
	registerUC     registerAccountUseCase
	logger         logger.Interface
}

func NewAuthHandler(
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	registerUC registerAccountUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUC:        loginUC,
		refreshTokenUC: refreshTokenUC,
		registerUC:     registerUC,
		logger:         logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RegisterRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	PlanID   string `json:"plan_id" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a malformed body gets the same answer as a wrong password
		utils.ErrorResponseWithError(c, errors.NewInvalidCredentialsError())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("login failed", "client_ip", c.ClientIP(), "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", toTokenResponse(dto.ToAccountDTO(result.Account), result.Tokens))
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewTokenInvalidError("refresh"))
		return
	}

	tokens, err := h.refreshTokenUC.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", toTokenResponse(nil, tokens))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	role, err := account.ParseRole(req.Role)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterAccountCommand{
		Role:     role,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		PlanID:   req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, &RegisterResponse{
		Account:      dto.ToAccountDTO(result.Account),
		Subscription: subdto.ToSubscriptionDTO(result.Subscription),
		CheckoutURL:  result.CheckoutURL,
	}, "Account registered")
}
