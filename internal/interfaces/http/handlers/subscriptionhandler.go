package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// SubscriptionHandler serves the caller's own subscription.
type SubscriptionHandler struct {
	ledger     subscriptionLedger
	checkoutUC createCheckoutUseCase
	cancelUC   cancelSubscriptionUseCase
	accounts   getAccountUseCase
	logger     logger.Interface
}

func NewSubscriptionHandler(
	ledger subscriptionLedger,
	checkoutUC createCheckoutUseCase,
	cancelUC cancelSubscriptionUseCase,
	accounts getAccountUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		ledger:     ledger,
		checkoutUC: checkoutUC,
		cancelUC:   cancelUC,
		accounts:   accounts,
		logger:     logger,
	}
}

type CancelSubscriptionRequest struct {
	AtPeriodEnd bool `json:"at_period_end"`
}

func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.ledger.Current(c.Request.Context(), actor.Role, actor.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if sub == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("no subscription"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToSubscriptionDTO(sub))
}

func (h *SubscriptionHandler) GetCapacity(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	capacity, err := h.ledger.CheckCustomerCapacity(c.Request.Context(), actor.Role, actor.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", capacity)
}

func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	owner, err := h.accounts.Execute(c.Request.Context(), actor, actor.Role, actor.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		OwnerKind: owner.Role,
		OwnerID:   owner.ID,
		Email:     owner.Email,
		Name:      owner.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checkout started", result)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelSubscriptionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	sub, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		OwnerKind:   actor.Role,
		OwnerID:     actor.ID,
		AtPeriodEnd: req.AtPeriodEnd,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription canceled", subdto.ToSubscriptionDTO(sub))
}
