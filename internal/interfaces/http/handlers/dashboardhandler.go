package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/application/dashboard/dto"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

type getDashboardUseCase interface {
	Execute(ctx context.Context, actor account.Principal) (*dto.DashboardStats, error)
}

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	getDashboardUC getDashboardUseCase
	logger         logger.Interface
}

func NewDashboardHandler(getDashboardUC getDashboardUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		getDashboardUC: getDashboardUC,
		logger:         logger,
	}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.getDashboardUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
