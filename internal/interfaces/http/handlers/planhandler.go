package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC       createPlanUseCase
	listPlansUC        listPlansUseCase
	updatePlanStatusUC updatePlanStatusUseCase
	logger             logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	listPlansUC listPlansUseCase,
	updatePlanStatusUC updatePlanStatusUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:       createPlanUC,
		listPlansUC:        listPlansUC,
		updatePlanStatusUC: updatePlanStatusUC,
		logger:             logger,
	}
}

type CreatePlanRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Slug            string `json:"slug" binding:"required,max=64"`
	Tier            string `json:"tier" binding:"required"`
	MonthlyPrice    int64  `json:"monthly_price" binding:"min=0"`
	Currency        string `json:"currency" binding:"omitempty,len=3"`
	MaxCustomers    *int64 `json:"max_customers" binding:"omitempty,min=0"`
	ExternalPriceID string `json:"external_price_id"`
	Description     string `json:"description"`
}

// UpdatePlanStatusRequest represents a unified request for plan status changes
type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ListPlans is public. A super admin may pass include_inactive=true.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	activeOnly := true
	if c.Query("include_inactive") == "true" &&
		c.GetString(constants.ContextKeyAccountKind) == string(account.RoleSuperAdmin) {
		activeOnly = false
	}

	plans, err := h.listPlansUC.Execute(c.Request.Context(), activeOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", plans)
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debugw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:            req.Name,
		Slug:            req.Slug,
		Tier:            req.Tier,
		MonthlyPrice:    req.MonthlyPrice,
		Currency:        req.Currency,
		MaxCustomers:    req.MaxCustomers,
		ExternalPriceID: req.ExternalPriceID,
		Description:     req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subdto.ToPlanDTO(plan, ""), "Plan created successfully")
}

func (h *PlanHandler) UpdatePlanStatus(c *gin.Context) {
	planID := c.Param("id")

	var req UpdatePlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	plan, err := h.updatePlanStatusUC.Execute(c.Request.Context(), planID, req.Status == "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan status updated", subdto.ToPlanDTO(plan, ""))
}
