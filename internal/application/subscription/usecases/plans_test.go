package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	apperrors "github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

func TestCreatePlanUseCase(t *testing.T) {
	var created *subscription.Plan
	repo := &mockPlanRepository{CreateFunc: func(ctx context.Context, p *subscription.Plan) error {
		if p.Slug == "taken" {
			return subscription.ErrPlanSlugExists
		}
		created = p
		return nil
	}}
	uc := NewCreatePlanUseCase(repo, "eur", logger.NewNop())

	plan, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name: "Pro", Slug: "Pro", Tier: "pro", MonthlyPrice: 2900, ExternalPriceID: "price_pro",
	})
	require.NoError(t, err)
	assert.Same(t, created, plan)
	assert.Equal(t, "pro", plan.Slug)
	assert.Equal(t, "eur", plan.Currency)
	assert.Equal(t, subscription.TierPro, plan.Tier)

	_, err = uc.Execute(context.Background(), CreatePlanCommand{Name: "X", Slug: "taken", Tier: "FREE"})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = uc.Execute(context.Background(), CreatePlanCommand{Name: "X", Slug: "x", Tier: "GOLD"})
	assert.Error(t, err)
}

func TestListPlansUseCase_RendersDescriptions(t *testing.T) {
	free := testPlan(t, subscription.TierFree, 0, nil)
	free.Description = "**five** clients"
	broken := testPlan(t, subscription.TierPro, 2900, nil)
	broken.Description = "boom"

	var gotActiveOnly bool
	repo := &mockPlanRepository{ListFunc: func(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
		gotActiveOnly = activeOnly
		return []*subscription.Plan{free, broken}, nil
	}}
	renderer := &mockRenderer{RenderFunc: func(source string) (string, error) {
		if source == "boom" {
			return "", errors.New("render failed")
		}
		return "<p><strong>five</strong> clients</p>", nil
	}}

	plans, err := NewListPlansUseCase(repo, renderer, logger.NewNop()).Execute(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, gotActiveOnly)
	require.Len(t, plans, 2)
	assert.Equal(t, "<p><strong>five</strong> clients</p>", plans[0].DescriptionHTML)
	assert.Equal(t, "", plans[1].DescriptionHTML, "render failures degrade to empty html")
}

func TestUpdatePlanStatusUseCase(t *testing.T) {
	plan := testPlan(t, subscription.TierStarter, 900, nil)
	updates := 0
	repo := &mockPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*subscription.Plan, error) {
			if id == plan.ID {
				return plan, nil
			}
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, p *subscription.Plan) error {
			updates++
			return nil
		},
	}
	uc := NewUpdatePlanStatusUseCase(repo, logger.NewNop())

	got, err := uc.Execute(context.Background(), plan.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = uc.Execute(context.Background(), plan.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, updates, "unchanged status is not rewritten")

	_, err = uc.Execute(context.Background(), "plan_missing", true)
	assert.True(t, apperrors.IsNotFoundError(err))
}

const catalogYAML = `
plans:
  - name: Free
    slug: free
    tier: FREE
    monthly_price: 0
    max_customers: 5
    description: Try it out
  - name: Pro
    slug: pro
    tier: PRO
    monthly_price: 2900
    currency: EUR
    external_price_id: price_pro
    max_customers: null
`

func TestSeedPlansUseCase_Upserts(t *testing.T) {
	catalog, err := ParsePlanCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Len(t, catalog.Plans, 2)
	assert.Nil(t, catalog.Plans[1].MaxCustomers)

	existingPro := testPlan(t, subscription.TierPro, 1900, int64Ptr(10))
	existingPro.Slug = "pro"
	var created []*subscription.Plan
	repo := &mockPlanRepository{
		GetBySlugFunc: func(ctx context.Context, slug string) (*subscription.Plan, error) {
			if slug == "pro" {
				return existingPro, nil
			}
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, p *subscription.Plan) error {
			created = append(created, p)
			return nil
		},
	}

	res, err := NewSeedPlansUseCase(repo, "eur", logger.NewNop()).Execute(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, created, 1)
	assert.Equal(t, "free", created[0].Slug)
	assert.Equal(t, int64(2900), existingPro.MonthlyPrice)
	assert.Nil(t, existingPro.MaxCustomers)
}

func TestParsePlanCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := ParsePlanCatalog(strings.NewReader("plans:\n  - name: X\n    price: 3\n"))
	assert.Error(t, err)
}
