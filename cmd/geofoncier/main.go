package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geofoncier/geofoncier/internal/interfaces/cli/migrate"
	"github.com/geofoncier/geofoncier/internal/interfaces/cli/permission"
	"github.com/geofoncier/geofoncier/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "geofoncier",
		Short:   "Geofoncier - land dossier claim ledger",
		Long:    `Geofoncier manages the ordered claims linking requesters to the properties of a land dossier. This binary carries the schema and access policy tooling.`,
		Version: version.String(),
	}
	rootCmd.SetVersionTemplate("geofoncier {{.Version}}\n")

	rootCmd.AddCommand(
		migrate.NewCommand(),
		permission.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
