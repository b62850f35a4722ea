package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	"github.com/dietdesk/dietdesk/internal/application/account/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// maxBulkItems caps one bulk request.
const maxBulkItems = 100

type AccountHandler struct {
	createUC        createAccountUseCase
	getUC           getAccountUseCase
	listUC          listAccountsUseCase
	updateUC        updateAccountUseCase
	lifecycle       accountLifecycle
	resetPasswordUC resetPasswordUseCase
	impersonateUC   impersonateUseCase
	logger          logger.Interface
}

func NewAccountHandler(
	createUC createAccountUseCase,
	getUC getAccountUseCase,
	listUC listAccountsUseCase,
	updateUC updateAccountUseCase,
	lifecycle accountLifecycle,
	resetPasswordUC resetPasswordUseCase,
	impersonateUC impersonateUseCase,
	logger logger.Interface,
) *AccountHandler {
	return &AccountHandler{
		createUC:        createUC,
		getUC:           getUC,
		listUC:          listUC,
		updateUC:        updateUC,
		lifecycle:       lifecycle,
		resetPasswordUC: resetPasswordUC,
		impersonateUC:   impersonateUC,
		logger:          logger,
	}
}

type CreateAccountRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
	ParentID string `json:"parent_id"`
	PlanID   string `json:"plan_id"`
}

// CreateAccountResponse carries the generated password once; it is never stored in clear.
type CreateAccountResponse struct {
	Account           *dto.AccountDTO `json:"account"`
	TemporaryPassword string          `json:"temporary_password,omitempty"`
}

type UpdateAccountRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Name   *string `json:"name" binding:"omitempty,max=100"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED active inactive suspended"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"omitempty,min=8,max=72"`
}

type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

type BulkItemRequest struct {
	ID     string `json:"id" binding:"required"`
	Kind   string `json:"kind" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type BulkRequest struct {
	Items []BulkItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *AccountHandler) Create(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateAccountCommand{
		Actor:    actor,
		Role:     role,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		ParentID: req.ParentID,
		PlanID:   req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, &CreateAccountResponse{
		Account:           dto.ToAccountDTO(result.Account),
		TemporaryPassword: result.TemporaryPassword,
	}, "Account created")
}

// List reads kind, parent_id, status, page and page_size from the query string.
func (h *AccountHandler) List(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := account.ParseRole(c.Query("kind"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var status account.Status
	if raw := c.Query("status"); raw != "" {
		if status, err = account.ParseStatus(raw); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAccountsQuery{
		Actor:    actor,
		Role:     role,
		ParentID: c.Query("parent_id"),
		Status:   status,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToAccountDTOList(result.Accounts), result.Total, result.Page, result.PageSize)
}

func (h *AccountHandler) Get(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	found, err := h.getUC.Execute(c.Request.Context(), actor, role, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToAccountDTO(found))
}

func (h *AccountHandler) Update(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateAccountCommand{
		Actor:  actor,
		Role:   role,
		ID:     id,
		Email:  req.Email,
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account updated", dto.ToAccountDTO(updated))
}

func (h *AccountHandler) Delete(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	if err := h.lifecycle.Delete(c.Request.Context(), actor, role, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *AccountHandler) Suspend(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	updated, err := h.lifecycle.Suspend(c.Request.Context(), actor, role, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account suspended", dto.ToAccountDTO(updated))
}

func (h *AccountHandler) Activate(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	updated, err := h.lifecycle.Activate(c.Request.Context(), actor, role, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account activated", dto.ToAccountDTO(updated))
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	// an empty body asks for a generated password
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	result, err := h.resetPasswordUC.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Actor:       actor,
		Role:        role,
		ID:          id,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset", &ResetPasswordResponse{
		TemporaryPassword: result.TemporaryPassword,
	})
}

func (h *AccountHandler) Impersonate(c *gin.Context) {
	actor, role, id, ok := h.actorAndTarget(c)
	if !ok {
		return
	}

	result, err := h.impersonateUC.Execute(c.Request.Context(), usecases.ImpersonateCommand{
		Actor:          actor,
		ImpersonatorID: c.GetString(constants.ContextKeyImpersonatorID),
		Role:           role,
		ID:             id,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("impersonation token issued",
		"impersonator_id", actor.ID,
		"impersonator_role", actor.Role,
		"target_id", result.Account.ID,
		"target_role", result.Account.Role,
	)

	resp := toTokenResponse(dto.ToAccountDTO(result.Account), result.Tokens)
	resp.ImpersonatorID = actor.ID
	utils.SuccessResponse(c, http.StatusOK, "Impersonation started", resp)
}

// Bulk applies each item independently; the response status is 200 even when some fail.
func (h *AccountHandler) Bulk(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if len(req.Items) > maxBulkItems {
		utils.ErrorResponseWithError(c, errors.NewValidationError(fmt.Sprintf("at most %d items per bulk request", maxBulkItems)))
		return
	}

	items := make([]usecases.BulkItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecases.BulkItem{ID: it.ID, Kind: it.Kind, Action: it.Action})
	}

	result := h.lifecycle.Bulk(c.Request.Context(), actor, items)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// actorAndTarget writes the error response itself and reports false on failure.
func (h *AccountHandler) actorAndTarget(c *gin.Context) (account.Principal, account.Role, string, bool) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return account.Principal{}, "", "", false
	}
	role, id, err := targetParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return account.Principal{}, "", "", false
	}
	return actor, role, id, true
}
