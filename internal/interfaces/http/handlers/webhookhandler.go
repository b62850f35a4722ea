package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

type handleBillingEventUseCase interface {
	Execute(ctx context.Context, cmd usecases.HandleBillingEventCommand) (*usecases.HandleBillingEventResult, error)
}

// WebhookHandler receives payment-provider callbacks. Authenticity comes from the signature, not a session.
type WebhookHandler struct {
	handleEventUC handleBillingEventUseCase
	logger        logger.Interface
}

func NewWebhookHandler(handleEventUC handleBillingEventUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		handleEventUC: handleEventUC,
		logger:        logger,
	}
}

// Stripe answers 200 for verified events even when they are ignored, so the provider stops retrying.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("unreadable webhook body"))
		return
	}

	result, err := h.handleEventUC.Execute(c.Request.Context(), usecases.HandleBillingEventCommand{
		Payload:   payload,
		Signature: c.GetHeader(constants.HeaderStripeSignature),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"event_id": result.EventID,
		"handled":  result.Handled,
	})
}
