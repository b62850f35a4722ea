package usecases

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dietdesk/dietdesk/internal/application/dashboard/dto"
	subscriptionDTO "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/domain/subscription"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

const (
	ScopeGlobal  = "global"
	ScopeAdmin   = "admin"
	ScopeTrainer = "trainer"
)

type AccountCounter interface {
	CountByRole(ctx context.Context, role account.Role, scope account.Scope) (int64, error)
}

type SubscriptionStats interface {
	CountByStatus(ctx context.Context) (map[subscription.Status]int64, error)
}

type RevenueStats interface {
	SumCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error)
}

type OwnSubscription interface {
	Current(ctx context.Context, ownerKind account.Role, ownerID string) (*subscription.Subscription, error)
	CheckCustomerCapacity(ctx context.Context, ownerKind account.Role, ownerID string) (subscription.Capacity, error)
}

// SnapshotCache is optional; a nil cache computes every request.
type SnapshotCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type GetDashboardUseCase struct {
	accounts      AccountCounter
	subscriptions SubscriptionStats
	revenue       RevenueStats
	ledger        OwnSubscription
	cache         SnapshotCache
	logger        logger.Interface
}

func NewGetDashboardUseCase(
	accounts AccountCounter,
	subscriptions SubscriptionStats,
	revenue RevenueStats,
	ledger OwnSubscription,
	cache SnapshotCache,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		accounts:      accounts,
		subscriptions: subscriptions,
		revenue:       revenue,
		ledger:        ledger,
		cache:         cache,
		logger:        logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, actor account.Principal) (*dto.DashboardStats, error) {
	if actor.Role == account.RoleCustomer {
		return nil, errors.NewInsufficientPermissionsError(account.ReasonRankNotHigher, "customers have no dashboard")
	}
	if !actor.Role.IsValid() {
		return nil, errors.NewUnknownRoleError(string(actor.Role))
	}

	key := cacheKey(actor)
	if uc.cache != nil {
		var cached dto.DashboardStats
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.logger.Warnw("dashboard cache read failed", "key", key, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	var (
		stats *dto.DashboardStats
		err   error
	)
	if actor.Role == account.RoleSuperAdmin {
		stats, err = uc.global(ctx)
	} else {
		stats, err = uc.scoped(ctx, actor)
	}
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, stats); err != nil {
			uc.logger.Warnw("dashboard cache write failed", "key", key, "error", err)
		}
	}
	return stats, nil
}

func cacheKey(actor account.Principal) string {
	if actor.Role == account.RoleSuperAdmin {
		return ScopeGlobal
	}
	return fmt.Sprintf("%s:%s", actor.Role, actor.ID)
}

func (uc *GetDashboardUseCase) global(ctx context.Context) (*dto.DashboardStats, error) {
	now := biztime.NowUTC()
	stats := &dto.DashboardStats{
		Scope:       ScopeGlobal,
		Accounts:    make(map[string]int64, len(account.AllRoles)),
		GeneratedAt: now,
	}
	counts := make([]int64, len(account.AllRoles))

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range account.AllRoles {
		g.Go(func() error {
			n, err := uc.accounts.CountByRole(gctx, role, account.Scope{})
			if err != nil {
				return fmt.Errorf("failed to count %s accounts: %w", role, err)
			}
			counts[i] = n
			return nil
		})
	}

	var byStatus map[subscription.Status]int64
	g.Go(func() error {
		var err error
		if byStatus, err = uc.subscriptions.CountByStatus(gctx); err != nil {
			return fmt.Errorf("failed to count subscriptions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if stats.MonthlyRevenue, err = uc.revenue.SumCompletedSince(gctx, biztime.StartOfMonthUTC(now)); err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to build dashboard", "scope", ScopeGlobal, "error", err)
		return nil, errors.NewInternalError("failed to build dashboard")
	}

	for i, role := range account.AllRoles {
		stats.Accounts[string(role)] = counts[i]
	}
	stats.Subscriptions = make(map[string]int64, len(subscription.AllStatuses))
	for _, status := range subscription.AllStatuses {
		stats.Subscriptions[string(status)] = byStatus[status]
	}
	if stats.MonthlyRevenue == nil {
		stats.MonthlyRevenue = map[string]int64{}
	}
	return stats, nil
}

// scoped counts what sits below an admin or trainer plus its own subscription.
func (uc *GetDashboardUseCase) scoped(ctx context.Context, actor account.Principal) (*dto.DashboardStats, error) {
	roles := []account.Role{account.RoleCustomer}
	scopeName := ScopeTrainer
	if actor.Role == account.RoleAdmin {
		roles = []account.Role{account.RoleTrainer, account.RoleCustomer}
		scopeName = ScopeAdmin
	}

	stats := &dto.DashboardStats{
		Scope:       scopeName,
		Accounts:    make(map[string]int64, len(roles)),
		GeneratedAt: biztime.NowUTC(),
	}
	counts := make([]int64, len(roles))
	scope := account.Scope{Role: actor.Role, ID: actor.ID}

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		g.Go(func() error {
			n, err := uc.accounts.CountByRole(gctx, role, scope)
			if err != nil {
				return fmt.Errorf("failed to count %s accounts: %w", role, err)
			}
			counts[i] = n
			return nil
		})
	}

	var (
		current  *subscription.Subscription
		capacity subscription.Capacity
	)
	g.Go(func() error {
		var err error
		if current, err = uc.ledger.Current(gctx, actor.Role, actor.ID); err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if capacity, err = uc.ledger.CheckCustomerCapacity(gctx, actor.Role, actor.ID); err != nil {
			return fmt.Errorf("failed to check capacity: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to build dashboard", "scope", scopeName, "account_id", actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to build dashboard")
	}

	for i, role := range roles {
		stats.Accounts[string(role)] = counts[i]
	}
	stats.Subscription = subscriptionDTO.ToSubscriptionDTO(current)
	stats.Capacity = &capacity
	return stats, nil
}
