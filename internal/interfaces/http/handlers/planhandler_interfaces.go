package handlers

import (
	"context"

	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*subscription.Plan, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, activeOnly bool) ([]*subdto.PlanDTO, error)
}

type updatePlanStatusUseCase interface {
	Execute(ctx context.Context, planID string, active bool) (*subscription.Plan, error)
}
