// Package bootstrap seeds the first super admin and the plan catalog.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	subscriptionUsecases "github.com/dietdesk/dietdesk/internal/application/subscription/usecases"
	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
	"github.com/dietdesk/dietdesk/internal/infrastructure/config"
	"github.com/dietdesk/dietdesk/internal/infrastructure/database"
	"github.com/dietdesk/dietdesk/internal/infrastructure/repository"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed initial data",
		Long:  `Create the first super admin account or load a plan catalog from YAML.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newSuperAdminCommand(),
		newPlansCommand(),
	)

	return cmd
}

func newSuperAdminCommand() *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "superadmin",
		Short: "Create a super admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuperAdmin(cmd.Context(), email, name, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password; generated and printed when empty")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlansCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Create or update plans from a YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(cmd.Context(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "configs/plans.yaml", "Plan catalog file")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

func runSuperAdmin(ctx context.Context, email, name, password string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	generated := password == ""
	if generated {
		if password, err = auth.GenerateTemporary(); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
	}

	hash, err := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost).Hash(password)
	if err != nil {
		return err
	}
	root, err := account.NewAccount(account.RoleSuperAdmin, email, name, hash, "")
	if err != nil {
		return err
	}

	repo := repository.NewAccountRepository(database.Get(), log.Named("repository.account"))
	if err := repo.Create(ctx, root); err != nil {
		return err
	}

	log.Infow("super admin created", "id", root.ID, "email", root.Email)
	fmt.Printf("Super admin %s created (id %s)\n", root.Email, root.ID)
	if generated {
		fmt.Printf("Temporary password: %s\n", password)
	}
	return nil
}

func runPlans(ctx context.Context, file string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open plan catalog: %w", err)
	}
	defer f.Close()

	catalog, err := subscriptionUsecases.ParsePlanCatalog(f)
	if err != nil {
		return err
	}

	planRepo := repository.NewPlanRepository(database.Get(), log.Named("repository.plan"))
	uc := subscriptionUsecases.NewSeedPlansUseCase(planRepo, cfg.Billing.DefaultCurrency, log.Named("usecase.seed_plans"))

	result, err := uc.Execute(ctx, catalog)
	if err != nil {
		return err
	}

	fmt.Printf("Plans created: %d, updated: %d\n", result.Created, result.Updated)
	return nil
}
