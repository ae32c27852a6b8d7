// Command orderctl runs the ordering workflow from a terminal: it reads the
// same config.toml as the server, so catalog overrides saved through the setup
// screen apply here too.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	env := &environment{}

	root := &cobra.Command{
		Use:           "orderctl",
		Short:         "Inventory ordering from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return env.close()
		},
	}
	root.Version = version
	root.SetVersionTemplate("orderctl {{.Version}}\n")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newCatalogCommand(env),
		newApplyCommand(env),
		newExportCommand(env),
	)
	return root
}
