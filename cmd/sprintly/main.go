package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/XavierPelle/sprintly/internal/interfaces/cli/migrate"
	"github.com/XavierPelle/sprintly/internal/interfaces/cli/server"
	"github.com/XavierPelle/sprintly/internal/interfaces/cli/version"
	"github.com/XavierPelle/sprintly/internal/interfaces/cli/worker"
)

// @title						Sprintly API
// @version					1.0
// @description				Project and ticket tracking backend with sprints, QA validation and dashboards.
// @BasePath					/api
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "sprintly",
		Short: "Sprintly - project and ticket tracking",
		Long:  `Sprintly is a project tracking backend with an HTTP API server, a scheduled job worker and database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		worker.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
