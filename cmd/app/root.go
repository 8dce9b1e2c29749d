package app

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "eventdesk",
		Short:         "Event lifecycle data over the console process's .dat files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config.yml")

	root.AddCommand(
		newServeCmd(&configPath),
		newInspectCmd(&configPath),
		newVerifyCmd(&configPath),
		newMigrateCmd(&configPath),
		newLoginCmd(&configPath),
		newRebuildCmd(&configPath),
	)

	return root
}
