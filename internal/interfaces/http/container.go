package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountUsecases "github.com/dietdesk/dietdesk/internal/application/account/usecases"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/infrastructure/cache"
	"github.com/dietdesk/dietdesk/internal/infrastructure/config"
	"github.com/dietdesk/dietdesk/internal/infrastructure/email"
	"github.com/dietdesk/dietdesk/internal/infrastructure/payment/stripe"
	"github.com/dietdesk/dietdesk/internal/infrastructure/permission"
	"github.com/dietdesk/dietdesk/internal/infrastructure/ratelimit"
	"github.com/dietdesk/dietdesk/internal/interfaces/http/middleware"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and provides Shutdown for graceful
// termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Infrastructure services
	jwtSvc       *auth.JWTService
	hasher       *auth.BcryptPasswordHasher
	enforcer     *permission.Enforcer
	gateway      *stripe.Gateway
	markdown     markdown.Renderer
	notifier     accountUsecases.Notifier
	loginLimiter accountUsecases.LoginLimiter
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, auth, casbin, Stripe, mail
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Repositories and use cases
	c.initRepositories()
	c.initUseCases()

	// Section 3: Handlers and middlewares
	if err := c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	redisClient, err := cache.NewRedisClient(ctx, c.cfg.Redis, c.log.Named("redis"))
	if err != nil {
		return err
	}
	c.redis = redisClient

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes, c.cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Permission.ModelPath, c.log.Named("permission"))
	if err != nil {
		return err
	}
	if err := enforcer.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.enforcer = enforcer

	if c.cfg.Stripe.SecretKey == "" {
		c.log.Warnw("stripe secret key not configured, checkout and webhooks will fail")
	}
	c.gateway = stripe.NewGateway(c.cfg.Stripe, c.log.Named("stripe"))
	c.markdown = markdown.NewRenderer()

	if c.cfg.Email.Enabled {
		c.notifier = email.NewSMTPEmailService(email.SMTPConfigFrom(c.cfg.Email, c.cfg.Server.BaseURL), c.log.Named("email"))
	} else {
		c.notifier = email.NewNoopEmailService(c.log.Named("email"))
	}

	if c.redis != nil {
		window := time.Duration(c.cfg.Auth.LoginRateLimit.WindowSeconds) * time.Second
		c.loginLimiter = ratelimit.NewRedisRateLimiter(c.redis, "dietdesk:login", ratelimit.RateLimitConfig{
			Limit:  c.cfg.Auth.LoginRateLimit.Attempts,
			Window: window,
		})
	} else {
		c.loginLimiter = ratelimit.NoopRateLimiter{}
	}

	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log.Named("middleware.auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log.Named("middleware.permission"))

	window := time.Duration(c.cfg.Auth.LoginRateLimit.WindowSeconds) * time.Second
	// The IP window allows a few emails per client before the per-email limiter kicks in.
	c.rateLimiter = middleware.NewRateLimiter(c.redis, "dietdesk:ratelimit", c.cfg.Auth.LoginRateLimit.Attempts*4, window)
}

// Engine returns the gin engine with all routes registered by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the redis connection. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis connection", "error", err)
		}
	}
	c.log.Infow("container shut down")
}
