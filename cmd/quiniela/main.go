package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quiniela-inc/quiniela/internal/interfaces/cli/migrate"
	"github.com/quiniela-inc/quiniela/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quiniela",
		Short: "Quiniela - multi-tenant prediction pool platform",
		Long:  `Quiniela is a multi-tenant prediction pool platform with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
