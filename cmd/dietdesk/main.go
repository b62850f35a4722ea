package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dietdesk/dietdesk/internal/interfaces/cli/bootstrap"
	"github.com/dietdesk/dietdesk/internal/interfaces/cli/migrate"
	"github.com/dietdesk/dietdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dietdesk",
		Short:        "DietDesk - multi-tenant diet planning backend",
		Long:         `DietDesk serves the account hierarchy, billing and dashboard API, and ships the migration and bootstrap tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		bootstrap.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
