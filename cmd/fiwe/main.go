package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/edofi/fiwe/internal/interfaces/cli/migrate"
	"github.com/edofi/fiwe/internal/interfaces/cli/server"
	"github.com/edofi/fiwe/internal/interfaces/cli/token"
	"github.com/edofi/fiwe/internal/interfaces/cli/worker"
)

// @title Fiwe Notification API
// @version 1.0
// @description In-app notifications, preferences and realtime streams for Fiwe.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fiwe",
		Short: "Fiwe - notification service",
		Long:  `Fiwe notification service with HTTP server, background worker, migration tools and a token helper for local testing.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
